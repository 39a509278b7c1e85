package feedback

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

// ErrInvalidInput marks testimonials rejected before any store write.
var ErrInvalidInput = errors.New("feedback: invalid input")

var errMissingComment = fmt.Errorf("%w: comment is required", ErrInvalidInput)

// Service handles camp testimonials.
type Service struct {
	feedback repository.FeedbackRepository
	logger   *slog.Logger
}

// New constructs a Service.
func New(feedback repository.FeedbackRepository, logger *slog.Logger) Service {
	return Service{feedback: feedback, logger: logger}
}

// Submit stores a testimonial.
func (s Service) Submit(ctx context.Context, entry domain.Feedback) (*domain.InsertResult, error) {
	if strings.TrimSpace(entry.Comment) == "" {
		return nil, errMissingComment
	}
	entry.CreatedAt = time.Now().UTC()
	return s.feedback.CreateFeedback(ctx, &entry)
}

// List returns all testimonials.
func (s Service) List(ctx context.Context) ([]domain.Feedback, error) {
	return s.feedback.ListFeedback(ctx)
}
