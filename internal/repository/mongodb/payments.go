package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/shehabweb1/MediCamp-Server/internal/domain"
)

// CreatePayment inserts a settlement record. Payment documents are never
// updated or deleted afterwards.
func (r *Repository) CreatePayment(ctx context.Context, payment *domain.Payment) (*domain.InsertResult, error) {
	res, err := r.db.Collection(collPayments).InsertOne(ctx, payment)
	if err != nil {
		return nil, err
	}
	return insertResult(res), nil
}

// ListPaymentsByEmail returns all settlements for one payer.
func (r *Repository) ListPaymentsByEmail(ctx context.Context, email string) ([]domain.Payment, error) {
	cursor, err := r.db.Collection(collPayments).Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	payments := []domain.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
