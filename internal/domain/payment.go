package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records funds captured for one or more registrations. Documents in
// the payment collection are immutable once written.
type Payment struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Email          string               `bson:"email" json:"email"`
	Amount         float64              `bson:"amount" json:"amount"`
	Fees           float64              `bson:"fees,omitempty" json:"fees,omitempty"`
	RegiIDs        []primitive.ObjectID `bson:"regi_ids" json:"regi_ids"`
	TransactionRef string               `bson:"transaction_ref" json:"transaction_ref"`
	CreatedAt      time.Time            `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
