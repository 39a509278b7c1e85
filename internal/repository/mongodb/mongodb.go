package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shehabweb1/MediCamp-Server/internal/domain"
	"github.com/shehabweb1/MediCamp-Server/internal/repository"
)

const (
	collUsers        = "users"
	collCamps        = "camps"
	collParticipants = "participants"
	collPayments     = "payment"
	collFeedback     = "feedback"
)

// Connect dials the document store and verifies the connection.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(dialCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Repository implements persistence interfaces on MongoDB.
type Repository struct {
	db *mongo.Database
}

// New constructs a Repository over the given database.
func New(db *mongo.Database) *Repository {
	return &Repository{db: db}
}

// ensure Repository satisfies interfaces.
var (
	_ repository.UserRepository        = (*Repository)(nil)
	_ repository.CampRepository        = (*Repository)(nil)
	_ repository.ParticipantRepository = (*Repository)(nil)
	_ repository.PaymentRepository     = (*Repository)(nil)
	_ repository.FeedbackRepository    = (*Repository)(nil)
)

// Ping reports store reachability for health checks.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}

// EnsureIndexes creates the secondary indexes the query paths rely on. No
// unique index is placed on (camp_id, email); duplicate registrations are
// allowed.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		collUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		collParticipants: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
			{Keys: bson.D{{Key: "camp_id", Value: 1}}},
		},
		collPayments: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
	}
	for name, models := range indexes {
		if _, err := r.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	return oid, nil
}

func insertResult(res *mongo.InsertOneResult) *domain.InsertResult {
	out := &domain.InsertResult{}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.InsertedID = oid.Hex()
	}
	return out
}

func updateResult(res *mongo.UpdateResult) *domain.UpdateResult {
	return &domain.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}
}

func deleteResult(res *mongo.DeleteResult) *domain.DeleteResult {
	return &domain.DeleteResult{DeletedCount: res.DeletedCount}
}
