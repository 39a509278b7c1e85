package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shehabweb1/MediCamp-Server/internal/domain"
	"github.com/shehabweb1/MediCamp-Server/internal/repository"
)

// CreateCamp inserts a camp document.
func (r *Repository) CreateCamp(ctx context.Context, camp *domain.Camp) (*domain.InsertResult, error) {
	res, err := r.db.Collection(collCamps).InsertOne(ctx, camp)
	if err != nil {
		return nil, err
	}
	return insertResult(res), nil
}

// ListCamps returns every camp document.
func (r *Repository) ListCamps(ctx context.Context) ([]domain.Camp, error) {
	cursor, err := r.db.Collection(collCamps).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	camps := []domain.Camp{}
	if err := cursor.All(ctx, &camps); err != nil {
		return nil, err
	}
	return camps, nil
}

// GetCampByID fetches one camp by identifier.
func (r *Repository) GetCampByID(ctx context.Context, id string) (*domain.Camp, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var camp domain.Camp
	if err := r.db.Collection(collCamps).FindOne(ctx, bson.M{"_id": oid}).Decode(&camp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &camp, nil
}

// UpdateCamp sets the editable attributes of a camp.
func (r *Repository) UpdateCamp(ctx context.Context, id string, update domain.CampUpdate) (*domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.db.Collection(collCamps).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}

// DeleteCamp removes a camp document.
func (r *Repository) DeleteCamp(ctx context.Context, id string) (*domain.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.db.Collection(collCamps).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	return deleteResult(res), nil
}

// IncParticipants atomically adjusts the derived participant counter. The
// field update is atomic at the store level; callers own the surrounding
// two-step consistency.
func (r *Repository) IncParticipants(ctx context.Context, id string, delta int64) (*domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.db.Collection(collCamps).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"participants": delta}})
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}

// SetParticipants overwrites the counter with a recomputed value.
func (r *Repository) SetParticipants(ctx context.Context, id string, count int64) (*domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.db.Collection(collCamps).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"participants": count}})
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}
