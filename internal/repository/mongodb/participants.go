package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shehabweb1/MediCamp-Server/internal/domain"
	"github.com/shehabweb1/MediCamp-Server/internal/repository"
)

// CreateParticipant inserts a registration document.
func (r *Repository) CreateParticipant(ctx context.Context, participant *domain.Participant) (*domain.InsertResult, error) {
	res, err := r.db.Collection(collParticipants).InsertOne(ctx, participant)
	if err != nil {
		return nil, err
	}
	return insertResult(res), nil
}

// ListParticipantsByEmail returns all registrations held by one identity.
func (r *Repository) ListParticipantsByEmail(ctx context.Context, email string) ([]domain.Participant, error) {
	cursor, err := r.db.Collection(collParticipants).Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	participants := []domain.Participant{}
	if err := cursor.All(ctx, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

// GetParticipantByID fetches one registration by identifier.
func (r *Repository) GetParticipantByID(ctx context.Context, id string) (*domain.Participant, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var participant domain.Participant
	if err := r.db.Collection(collParticipants).FindOne(ctx, bson.M{"_id": oid}).Decode(&participant); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &participant, nil
}

// DeleteParticipant removes a registration document.
func (r *Repository) DeleteParticipant(ctx context.Context, id string) (*domain.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.db.Collection(collParticipants).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	return deleteResult(res), nil
}

// CountParticipantsByCamp counts the registrations referencing a camp.
func (r *Repository) CountParticipantsByCamp(ctx context.Context, campID string) (int64, error) {
	oid, err := objectID(campID)
	if err != nil {
		return 0, err
	}
	return r.db.Collection(collParticipants).CountDocuments(ctx, bson.M{"camp_id": oid})
}

// MarkParticipantsPaid bulk-sets payment_status on the matching id set.
// Identifiers without a matching document are silently unaffected.
func (r *Repository) MarkParticipantsPaid(ctx context.Context, ids []primitive.ObjectID) (*domain.UpdateResult, error) {
	res, err := r.db.Collection(collParticipants).UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"payment_status": domain.PaymentStatusPaid}},
	)
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}
