package camp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/shehabweb1/MediCamp-Server/internal/domain"
	"github.com/shehabweb1/MediCamp-Server/internal/repository"
)

// ErrInvalidInput marks camp submissions rejected before any store write.
var ErrInvalidInput = errors.New("camp: invalid input")

var errMissingName = fmt.Errorf("%w: camp name is required", ErrInvalidInput)

// ReconcileResult reports a counter repair.
type ReconcileResult struct {
	Participants int64                `json:"participants"`
	Update       *domain.UpdateResult `json:"updateResult"`
}

// Service manages camp offerings and the repair pass for their derived
// participant counter.
type Service struct {
	camps        repository.CampRepository
	participants repository.ParticipantRepository
	logger       *slog.Logger
}

// New constructs a Service.
func New(camps repository.CampRepository, participants repository.ParticipantRepository, logger *slog.Logger) Service {
	return Service{camps: camps, participants: participants, logger: logger}
}

// Create publishes a camp. The participant counter always starts at zero
// regardless of the submitted document.
func (s Service) Create(ctx context.Context, camp domain.Camp) (*domain.Camp, *domain.InsertResult, error) {
	if strings.TrimSpace(camp.Name) == "" {
		return nil, nil, errMissingName
	}
	camp.Participants = 0
	camp.CreatedAt = time.Now().UTC()
	res, err := s.camps.CreateCamp(ctx, &camp)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("camp created", "camp_id", res.InsertedID, "name", camp.Name)
	return &camp, res, nil
}

// List returns all camps.
func (s Service) List(ctx context.Context) ([]domain.Camp, error) {
	return s.camps.ListCamps(ctx)
}

// Get returns one camp by id.
func (s Service) Get(ctx context.Context, id string) (*domain.Camp, error) {
	return s.camps.GetCampByID(ctx, id)
}

// Update edits a camp's attributes.
func (s Service) Update(ctx context.Context, id string, update domain.CampUpdate) (*domain.UpdateResult, error) {
	return s.camps.UpdateCamp(ctx, id, update)
}

// Delete removes a camp.
func (s Service) Delete(ctx context.Context, id string) (*domain.DeleteResult, error) {
	res, err := s.camps.DeleteCamp(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.DeletedCount > 0 {
		s.logger.Info("camp deleted", "camp_id", id)
	}
	return res, nil
}

// Reconcile recomputes the participant counter from the registrations that
// actually reference the camp and overwrites the stored value. This is the
// repair pass for the two-step registration write, which can leave the
// counter behind after a mid-sequence failure.
func (s Service) Reconcile(ctx context.Context, id string) (*ReconcileResult, error) {
	if _, err := s.camps.GetCampByID(ctx, id); err != nil {
		return nil, err
	}
	count, err := s.participants.CountParticipantsByCamp(ctx, id)
	if err != nil {
		return nil, err
	}
	update, err := s.camps.SetParticipants(ctx, id, count)
	if err != nil {
		return nil, err
	}
	s.logger.Info("camp counter reconciled", "camp_id", id, "participants", count)
	return &ReconcileResult{Participants: count, Update: update}, nil
}
