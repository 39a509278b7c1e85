package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shehabweb1/MediCamp-Server/internal/domain"
	"github.com/shehabweb1/MediCamp-Server/internal/repository"
)

// ErrInvalidInput marks payment requests rejected before any external call or
// store write.
var ErrInvalidInput = errors.New("payment: invalid input")

var (
	errInvalidAmount = fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	errMissingEmail  = fmt.Errorf("%w: payer email is required", ErrInvalidInput)
)

// IntentCreator abstracts the external payment processor: the only operation
// this system uses is intent creation, which yields an opaque client secret.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// ConfirmInput names a payer, an amount and the registrations being settled.
type ConfirmInput struct {
	Email   string   `json:"email"`
	Amount  float64  `json:"amount"`
	Fees    float64  `json:"fees"`
	RegiIDs []string `json:"regiId"`
}

// ConfirmResult bundles the payment insert with the bulk status update.
type ConfirmResult struct {
	Payment *domain.InsertResult `json:"paymentResult"`
	Update  *domain.UpdateResult `json:"updateResult"`
}

// Service reconciles payments: it creates processor intents and, on
// confirmation, records the settlement and flips the settled registrations to
// paid.
type Service struct {
	payments     repository.PaymentRepository
	participants repository.ParticipantRepository
	intents      IntentCreator
	currency     string
	logger       *slog.Logger
}

// New constructs a Service.
func New(payments repository.PaymentRepository, participants repository.ParticipantRepository, intents IntentCreator, currency string, logger *slog.Logger) Service {
	if currency == "" {
		currency = "usd"
	}
	return Service{payments: payments, participants: participants, intents: intents, currency: currency, logger: logger}
}

// CreateIntent forwards the fee, converted to the smallest currency unit, to
// the processor and returns its client secret. Nothing is written locally;
// processor errors propagate to the caller.
func (s Service) CreateIntent(ctx context.Context, fees float64) (string, error) {
	cents := int64(math.Round(fees * 100))
	if cents <= 0 {
		return "", errInvalidAmount
	}
	if s.intents == nil {
		return "", errors.New("payment processor not configured")
	}
	return s.intents.CreateIntent(ctx, cents, s.currency)
}

// Confirm records a settlement. Two separate writes with no shared
// transaction: the payment insert, then one bulk update that sets
// payment_status on every supplied registration id that exists. Ids without a
// matching document, including malformed ones, are silently unaffected.
func (s Service) Confirm(ctx context.Context, input ConfirmInput) (*ConfirmResult, error) {
	if strings.TrimSpace(input.Email) == "" {
		return nil, errMissingEmail
	}

	ids := make([]primitive.ObjectID, 0, len(input.RegiIDs))
	for _, raw := range input.RegiIDs {
		oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
		if err != nil {
			s.logger.Warn("skipping malformed registration id in settlement", "regi_id", raw)
			continue
		}
		ids = append(ids, oid)
	}

	record := &domain.Payment{
		Email:          input.Email,
		Amount:         input.Amount,
		Fees:           input.Fees,
		RegiIDs:        ids,
		TransactionRef: uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
	}
	inserted, err := s.payments.CreatePayment(ctx, record)
	if err != nil {
		return nil, err
	}

	updated, err := s.participants.MarkParticipantsPaid(ctx, ids)
	if err != nil {
		s.logger.Error("participant status update failed after payment insert",
			"payment_id", inserted.InsertedID, "error", err)
		return &ConfirmResult{Payment: inserted}, err
	}

	s.logger.Info("payment recorded", "payment_id", inserted.InsertedID,
		"email", input.Email, "settled", updated.ModifiedCount)
	return &ConfirmResult{Payment: inserted, Update: updated}, nil
}

// ListForIdentity returns the payments whose payer email matches.
func (s Service) ListForIdentity(ctx context.Context, email string) ([]domain.Payment, error) {
	return s.payments.ListPaymentsByEmail(ctx, email)
}
