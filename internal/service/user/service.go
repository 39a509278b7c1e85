package user

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

// ErrInvalidInput marks account requests rejected before any store write.
var ErrInvalidInput = errors.New("user: invalid input")

var errMissingEmail = fmt.Errorf("%w: email is required", ErrInvalidInput)

// Service manages platform accounts.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger) Service {
	return Service{users: users, logger: logger}
}

// Create stores an account document as given. Email uniqueness is not
// enforced at the store level.
func (s Service) Create(ctx context.Context, user domain.User) (*domain.InsertResult, error) {
	if strings.TrimSpace(user.Email) == "" {
		return nil, errMissingEmail
	}
	user.CreatedAt = time.Now().UTC()
	res, err := s.users.CreateUser(ctx, &user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user created", "email", user.Email)
	return res, nil
}

// List returns all accounts.
func (s Service) List(ctx context.Context) ([]domain.User, error) {
	return s.users.ListUsers(ctx)
}

// Get returns one account by email.
func (s Service) Get(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetUserByEmail(ctx, email)
}

// UpdateProfile sets the mutable profile fields on an account.
func (s Service) UpdateProfile(ctx context.Context, email string, update domain.ProfileUpdate) (*domain.UpdateResult, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errMissingEmail
	}
	return s.users.UpdateUserProfile(ctx, email, update)
}
