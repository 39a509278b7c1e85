package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shehabweb1/MediCamp-Server/internal/domain"
	"github.com/shehabweb1/MediCamp-Server/internal/repository"
)

// CreateUser inserts an account document.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) (*domain.InsertResult, error) {
	res, err := r.db.Collection(collUsers).InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	return insertResult(res), nil
}

// ListUsers returns every account document.
func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.db.Collection(collUsers).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	users := []domain.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserByEmail fetches one account by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.Collection(collUsers).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUserProfile sets the mutable profile fields of an account.
func (r *Repository) UpdateUserProfile(ctx context.Context, email string, update domain.ProfileUpdate) (*domain.UpdateResult, error) {
	res, err := r.db.Collection(collUsers).UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": update})
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}
