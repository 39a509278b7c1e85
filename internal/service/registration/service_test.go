package registration

import (
	"context"
	"errors"
	"io"
	"testing"

	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shehabweb1/MediCamp-Server/internal/domain"
	"github.com/shehabweb1/MediCamp-Server/internal/repository"
)

type participantRepoMock struct {
	createFunc   func(ctx context.Context, p *domain.Participant) (*domain.InsertResult, error)
	listFunc     func(ctx context.Context, email string) ([]domain.Participant, error)
	getFunc      func(ctx context.Context, id string) (*domain.Participant, error)
	deleteFunc   func(ctx context.Context, id string) (*domain.DeleteResult, error)
	countFunc    func(ctx context.Context, campID string) (int64, error)
	markPaidFunc func(ctx context.Context, ids []primitive.ObjectID) (*domain.UpdateResult, error)
}

func (m *participantRepoMock) CreateParticipant(ctx context.Context, p *domain.Participant) (*domain.InsertResult, error) {
	return m.createFunc(ctx, p)
}

func (m *participantRepoMock) ListParticipantsByEmail(ctx context.Context, email string) ([]domain.Participant, error) {
	return m.listFunc(ctx, email)
}

func (m *participantRepoMock) GetParticipantByID(ctx context.Context, id string) (*domain.Participant, error) {
	return m.getFunc(ctx, id)
}

func (m *participantRepoMock) DeleteParticipant(ctx context.Context, id string) (*domain.DeleteResult, error) {
	return m.deleteFunc(ctx, id)
}

func (m *participantRepoMock) CountParticipantsByCamp(ctx context.Context, campID string) (int64, error) {
	return m.countFunc(ctx, campID)
}

func (m *participantRepoMock) MarkParticipantsPaid(ctx context.Context, ids []primitive.ObjectID) (*domain.UpdateResult, error) {
	return m.markPaidFunc(ctx, ids)
}

type campRepoMock struct {
	incFunc func(ctx context.Context, id string, delta int64) (*domain.UpdateResult, error)
	getFunc func(ctx context.Context, id string) (*domain.Camp, error)
}

func (m *campRepoMock) CreateCamp(ctx context.Context, camp *domain.Camp) (*domain.InsertResult, error) {
	panic("not expected")
}

func (m *campRepoMock) ListCamps(ctx context.Context) ([]domain.Camp, error) { panic("not expected") }

func (m *campRepoMock) GetCampByID(ctx context.Context, id string) (*domain.Camp, error) {
	return m.getFunc(ctx, id)
}

func (m *campRepoMock) UpdateCamp(ctx context.Context, id string, update domain.CampUpdate) (*domain.UpdateResult, error) {
	panic("not expected")
}

func (m *campRepoMock) DeleteCamp(ctx context.Context, id string) (*domain.DeleteResult, error) {
	panic("not expected")
}

func (m *campRepoMock) IncParticipants(ctx context.Context, id string, delta int64) (*domain.UpdateResult, error) {
	return m.incFunc(ctx, id, delta)
}

func (m *campRepoMock) SetParticipants(ctx context.Context, id string, count int64) (*domain.UpdateResult, error) {
	panic("not expected")
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegisterIncrementsCounterOnce(t *testing.T) {
	campID := primitive.NewObjectID()

	// Simulates the scenario camp with participants: 4.
	counter := int64(4)

	var created *domain.Participant
	participants := &participantRepoMock{
		createFunc: func(_ context.Context, p *domain.Participant) (*domain.InsertResult, error) {
			created = p
			return &domain.InsertResult{InsertedID: primitive.NewObjectID().Hex()}, nil
		},
	}
	camps := &campRepoMock{
		incFunc: func(_ context.Context, id string, delta int64) (*domain.UpdateResult, error) {
			if id != campID.Hex() {
				t.Fatalf("increment targeted wrong camp: %s", id)
			}
			counter += delta
			return &domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}

	svc := New(participants, camps, nil, newLogger())
	result, err := svc.Register(context.Background(), JoinInput{
		CampID: campID.Hex(),
		Email:  "a@x.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if counter != 5 {
		t.Fatalf("expected counter 5, got %d", counter)
	}
	if created == nil {
		t.Fatalf("expected participant insert")
	}
	if created.PaymentStatus != domain.PaymentStatusUnpaid {
		t.Fatalf("expected unpaid status, got %q", created.PaymentStatus)
	}
	if created.CampID != campID {
		t.Fatalf("participant references wrong camp: %s", created.CampID.Hex())
	}
	if created.RegistrationKey == "" {
		t.Fatalf("expected registration key to be generated")
	}
	if result.Join == nil || result.Join.InsertedID == "" {
		t.Fatalf("expected insert acknowledgment in composite result")
	}
	if result.UpdateCamps == nil || result.UpdateCamps.ModifiedCount != 1 {
		t.Fatalf("expected counter acknowledgment in composite result: %+v", result.UpdateCamps)
	}
}

func TestRegisterSurfacesCounterFailure(t *testing.T) {
	campID := primitive.NewObjectID()
	storeErr := errors.New("write concern timeout")

	participants := &participantRepoMock{
		createFunc: func(_ context.Context, p *domain.Participant) (*domain.InsertResult, error) {
			return &domain.InsertResult{InsertedID: primitive.NewObjectID().Hex()}, nil
		},
	}
	camps := &campRepoMock{
		incFunc: func(_ context.Context, id string, delta int64) (*domain.UpdateResult, error) {
			return nil, storeErr
		},
	}

	svc := New(participants, camps, nil, newLogger())
	result, err := svc.Register(context.Background(), JoinInput{CampID: campID.Hex(), Email: "a@x.com"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error surfaced, got %v", err)
	}
	// The insert is not rolled back; the partial result still reports it.
	if result == nil || result.Join == nil || result.Join.InsertedID == "" {
		t.Fatalf("expected partial result with insert acknowledgment")
	}
	if result.UpdateCamps != nil {
		t.Fatalf("expected no counter acknowledgment on failure")
	}
}

func TestRegisterRejectsInvalidCampID(t *testing.T) {
	participants := &participantRepoMock{
		createFunc: func(_ context.Context, p *domain.Participant) (*domain.InsertResult, error) {
			t.Fatalf("no store write expected for invalid camp id")
			return nil, nil
		},
	}
	camps := &campRepoMock{}

	svc := New(participants, camps, nil, newLogger())
	if _, err := svc.Register(context.Background(), JoinInput{CampID: "not-an-id", Email: "a@x.com"}); err == nil {
		t.Fatalf("expected error for invalid camp id")
	}
	if _, err := svc.Register(context.Background(), JoinInput{CampID: primitive.NewObjectID().Hex()}); err == nil {
		t.Fatalf("expected error for missing email")
	}
}

func TestWithdrawDecrementsCounter(t *testing.T) {
	campID := primitive.NewObjectID()
	participantID := primitive.NewObjectID()

	var delta int64
	participants := &participantRepoMock{
		getFunc: func(_ context.Context, id string) (*domain.Participant, error) {
			return &domain.Participant{ID: participantID, CampID: campID, Email: "a@x.com"}, nil
		},
		deleteFunc: func(_ context.Context, id string) (*domain.DeleteResult, error) {
			return &domain.DeleteResult{DeletedCount: 1}, nil
		},
	}
	camps := &campRepoMock{
		incFunc: func(_ context.Context, id string, d int64) (*domain.UpdateResult, error) {
			delta = d
			return &domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}

	svc := New(participants, camps, nil, newLogger())
	result, err := svc.Withdraw(context.Background(), participantID.Hex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != -1 {
		t.Fatalf("expected counter delta -1, got %d", delta)
	}
	if result.Delete.DeletedCount != 1 || result.UpdateCamps == nil {
		t.Fatalf("unexpected composite result: %+v", result)
	}
}

func TestWithdrawUnknownParticipant(t *testing.T) {
	participants := &participantRepoMock{
		getFunc: func(_ context.Context, id string) (*domain.Participant, error) {
			return nil, repository.ErrNotFound
		},
	}
	camps := &campRepoMock{
		incFunc: func(_ context.Context, id string, d int64) (*domain.UpdateResult, error) {
			t.Fatalf("no counter write expected")
			return nil, nil
		},
	}

	svc := New(participants, camps, nil, newLogger())
	if _, err := svc.Withdraw(context.Background(), primitive.NewObjectID().Hex()); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
