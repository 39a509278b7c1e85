package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Participant payment states.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Participant is one registration of one identity into one camp. A camp may
// hold many participants; duplicate (camp, email) registrations are not
// rejected, but every registration carries its own RegistrationKey.
type Participant struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CampID          primitive.ObjectID `bson:"camp_id" json:"camp_id"`
	CampName        string             `bson:"camp_name,omitempty" json:"camp_name,omitempty"`
	Name            string             `bson:"name,omitempty" json:"name,omitempty"`
	Email           string             `bson:"email" json:"email"`
	Fees            float64            `bson:"fees" json:"fees"`
	PaymentStatus   string             `bson:"payment_status" json:"payment_status"`
	RegistrationKey string             `bson:"registration_key" json:"registration_key"`
	CreatedAt       time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
