package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/shehabweb1/MediCamp-Server/internal/domain"
)

// CreateFeedback inserts a testimonial document.
func (r *Repository) CreateFeedback(ctx context.Context, feedback *domain.Feedback) (*domain.InsertResult, error) {
	res, err := r.db.Collection(collFeedback).InsertOne(ctx, feedback)
	if err != nil {
		return nil, err
	}
	return insertResult(res), nil
}

// ListFeedback returns every testimonial.
func (r *Repository) ListFeedback(ctx context.Context) ([]domain.Feedback, error) {
	cursor, err := r.db.Collection(collFeedback).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	entries := []domain.Feedback{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
