package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shehabweb1/MediCamp-Server/internal/domain"
)

// UserRepository persists platform accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.InsertResult, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUserProfile(ctx context.Context, email string, update domain.ProfileUpdate) (*domain.UpdateResult, error)
}

// CampRepository persists camps and their derived participant counter.
type CampRepository interface {
	CreateCamp(ctx context.Context, camp *domain.Camp) (*domain.InsertResult, error)
	ListCamps(ctx context.Context) ([]domain.Camp, error)
	GetCampByID(ctx context.Context, id string) (*domain.Camp, error)
	UpdateCamp(ctx context.Context, id string, update domain.CampUpdate) (*domain.UpdateResult, error)
	DeleteCamp(ctx context.Context, id string) (*domain.DeleteResult, error)
	IncParticipants(ctx context.Context, id string, delta int64) (*domain.UpdateResult, error)
	SetParticipants(ctx context.Context, id string, count int64) (*domain.UpdateResult, error)
}

// ParticipantRepository persists camp registrations.
type ParticipantRepository interface {
	CreateParticipant(ctx context.Context, participant *domain.Participant) (*domain.InsertResult, error)
	ListParticipantsByEmail(ctx context.Context, email string) ([]domain.Participant, error)
	GetParticipantByID(ctx context.Context, id string) (*domain.Participant, error)
	DeleteParticipant(ctx context.Context, id string) (*domain.DeleteResult, error)
	CountParticipantsByCamp(ctx context.Context, campID string) (int64, error)
	MarkParticipantsPaid(ctx context.Context, ids []primitive.ObjectID) (*domain.UpdateResult, error)
}

// PaymentRepository persists settlement records.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *domain.Payment) (*domain.InsertResult, error)
	ListPaymentsByEmail(ctx context.Context, email string) ([]domain.Payment, error)
}

// FeedbackRepository persists testimonials.
type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, feedback *domain.Feedback) (*domain.InsertResult, error)
	ListFeedback(ctx context.Context) ([]domain.Feedback, error)
}
