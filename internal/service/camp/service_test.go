package camp

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

type campRepoMock struct {
	createFunc func(ctx context.Context, camp *domain.Camp) (*domain.InsertResult, error)
	getFunc    func(ctx context.Context, id string) (*domain.Camp, error)
	setFunc    func(ctx context.Context, id string, count int64) (*domain.UpdateResult, error)
}

func (m *campRepoMock) CreateCamp(ctx context.Context, camp *domain.Camp) (*domain.InsertResult, error) {
	return m.createFunc(ctx, camp)
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
	panic("not expected")
}

func (m *campRepoMock) SetParticipants(ctx context.Context, id string, count int64) (*domain.UpdateResult, error) {
	return m.setFunc(ctx, id, count)
}

type participantRepoMock struct {
	countFunc func(ctx context.Context, campID string) (int64, error)
}

func (m *participantRepoMock) CreateParticipant(ctx context.Context, p *domain.Participant) (*domain.InsertResult, error) {
	panic("not expected")
}

func (m *participantRepoMock) ListParticipantsByEmail(ctx context.Context, email string) ([]domain.Participant, error) {
	panic("not expected")
}

func (m *participantRepoMock) GetParticipantByID(ctx context.Context, id string) (*domain.Participant, error) {
	panic("not expected")
}

func (m *participantRepoMock) DeleteParticipant(ctx context.Context, id string) (*domain.DeleteResult, error) {
	panic("not expected")
}

func (m *participantRepoMock) CountParticipantsByCamp(ctx context.Context, campID string) (int64, error) {
	return m.countFunc(ctx, campID)
}

func (m *participantRepoMock) MarkParticipantsPaid(ctx context.Context, ids []primitive.ObjectID) (*domain.UpdateResult, error) {
	panic("not expected")
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateForcesZeroCounter(t *testing.T) {
	var stored *domain.Camp
	camps := &campRepoMock{
		createFunc: func(_ context.Context, camp *domain.Camp) (*domain.InsertResult, error) {
			stored = camp
			return &domain.InsertResult{InsertedID: primitive.NewObjectID().Hex()}, nil
		},
	}

	svc := New(camps, &participantRepoMock{}, newLogger())
	_, _, err := svc.Create(context.Background(), domain.Camp{Name: "Free Eye Camp", Participants: 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Participants != 0 {
		t.Fatalf("expected counter forced to 0, got %d", stored.Participants)
	}
}

func TestReconcileRecomputesCounter(t *testing.T) {
	campID := primitive.NewObjectID().Hex()

	camps := &campRepoMock{
		getFunc: func(_ context.Context, id string) (*domain.Camp, error) {
			return &domain.Camp{Participants: 3}, nil
		},
	}
	var setCount int64 = -1
	camps.setFunc = func(_ context.Context, id string, count int64) (*domain.UpdateResult, error) {
		if id != campID {
			t.Fatalf("unexpected camp id: %s", id)
		}
		setCount = count
		return &domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	participants := &participantRepoMock{
		countFunc: func(_ context.Context, id string) (int64, error) {
			return 7, nil
		},
	}

	svc := New(camps, participants, newLogger())
	result, err := svc.Reconcile(context.Background(), campID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if setCount != 7 {
		t.Fatalf("expected counter set to 7, got %d", setCount)
	}
	if result.Participants != 7 || result.Update.ModifiedCount != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestReconcileUnknownCamp(t *testing.T) {
	camps := &campRepoMock{
		getFunc: func(_ context.Context, id string) (*domain.Camp, error) {
			return nil, repository.ErrNotFound
		},
	}
	participants := &participantRepoMock{
		countFunc: func(_ context.Context, id string) (int64, error) {
			t.Fatalf("no count expected for missing camp")
			return 0, nil
		},
	}

	svc := New(camps, participants, newLogger())
	if _, err := svc.Reconcile(context.Background(), primitive.NewObjectID().Hex()); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
