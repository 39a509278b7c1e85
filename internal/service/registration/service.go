package registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shehabweb1/MediCamp-Server/internal/domain"
	"github.com/shehabweb1/MediCamp-Server/internal/repository"
	"github.com/shehabweb1/MediCamp-Server/internal/ws"
)

// ErrInvalidInput marks enrollment requests rejected before any store write.
var ErrInvalidInput = errors.New("registration: invalid input")

var (
	errMissingEmail  = fmt.Errorf("%w: participant email is required", ErrInvalidInput)
	errInvalidCampID = fmt.Errorf("%w: camp id is not a valid identifier", ErrInvalidInput)
)

// JoinInput carries one enrollment request.
type JoinInput struct {
	CampID   string  `json:"camp_id"`
	CampName string  `json:"camp_name"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Fees     float64 `json:"fees"`
}

// JoinResult bundles the outcomes of both writes of a registration so the
// caller observes each acknowledgment.
type JoinResult struct {
	Join        *domain.InsertResult `json:"joinResult"`
	UpdateCamps *domain.UpdateResult `json:"updateCamps"`
}

// WithdrawResult bundles the participant delete with the counter adjustment.
type WithdrawResult struct {
	Delete      *domain.DeleteResult `json:"deleteResult"`
	UpdateCamps *domain.UpdateResult `json:"updateCamps"`
}

// Service coordinates participant enrollment: it owns the two-step
// participant-insert plus camp-counter write sequence.
type Service struct {
	participants repository.ParticipantRepository
	camps        repository.CampRepository
	hub          *ws.Hub
	logger       *slog.Logger
}

// New constructs a Service.
func New(participants repository.ParticipantRepository, camps repository.CampRepository, hub *ws.Hub, logger *slog.Logger) Service {
	return Service{participants: participants, camps: camps, hub: hub, logger: logger}
}

// Register enrolls an identity into a camp. The participant insert and the
// counter increment are separate store writes with no shared transaction: when
// the increment fails after a successful insert, the camp undercounts its
// roster until a reconcile pass repairs it. The composite result reports
// whatever completed.
func (s Service) Register(ctx context.Context, input JoinInput) (*JoinResult, error) {
	if strings.TrimSpace(input.Email) == "" {
		return nil, errMissingEmail
	}
	campID, err := primitive.ObjectIDFromHex(strings.TrimSpace(input.CampID))
	if err != nil {
		return nil, errInvalidCampID
	}

	participant := &domain.Participant{
		CampID:          campID,
		CampName:        input.CampName,
		Name:            input.Name,
		Email:           input.Email,
		Fees:            input.Fees,
		PaymentStatus:   domain.PaymentStatusUnpaid,
		RegistrationKey: uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
	}
	join, err := s.participants.CreateParticipant(ctx, participant)
	if err != nil {
		return nil, err
	}

	update, err := s.camps.IncParticipants(ctx, campID.Hex(), 1)
	if err != nil {
		s.logger.Error("camp counter increment failed after participant insert",
			"camp_id", campID.Hex(), "participant_id", join.InsertedID, "error", err)
		return &JoinResult{Join: join}, err
	}

	s.logger.Info("participant registered", "camp_id", campID.Hex(), "email", input.Email)
	s.broadcast(campID.Hex(), "registered", input.Email)
	return &JoinResult{Join: join, UpdateCamps: update}, nil
}

// ListByEmail returns the registrations held by one identity.
func (s Service) ListByEmail(ctx context.Context, email string) ([]domain.Participant, error) {
	return s.participants.ListParticipantsByEmail(ctx, email)
}

// Withdraw removes a registration and reflects the removal in the camp's
// participant counter.
func (s Service) Withdraw(ctx context.Context, id string) (*WithdrawResult, error) {
	participant, err := s.participants.GetParticipantByID(ctx, id)
	if err != nil {
		return nil, err
	}
	deleted, err := s.participants.DeleteParticipant(ctx, id)
	if err != nil {
		return nil, err
	}
	result := &WithdrawResult{Delete: deleted}
	if deleted.DeletedCount == 0 {
		return result, nil
	}

	campID := participant.CampID.Hex()
	update, err := s.camps.IncParticipants(ctx, campID, -1)
	if err != nil {
		s.logger.Error("camp counter decrement failed after withdrawal",
			"camp_id", campID, "participant_id", id, "error", err)
		return result, err
	}
	result.UpdateCamps = update

	s.logger.Info("participant withdrawn", "camp_id", campID, "participant_id", id)
	s.broadcast(campID, "withdrawn", participant.Email)
	return result, nil
}

func (s Service) broadcast(campID, event, email string) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"type":    event,
		"camp_id": campID,
		"email":   email,
		"at":      time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		s.logger.Warn("failed to marshal roster event", "error", err)
		return
	}
	s.hub.Broadcast(campID, payload)
}
