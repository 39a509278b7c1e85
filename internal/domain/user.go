package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a platform account. Email uniqueness is an application
// convention only; the store does not enforce it.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name             string             `bson:"name,omitempty" json:"name,omitempty"`
	Email            string             `bson:"email" json:"email"`
	Role             string             `bson:"role,omitempty" json:"role,omitempty"`
	Address          string             `bson:"address,omitempty" json:"address,omitempty"`
	ContactEmail     string             `bson:"contact_email,omitempty" json:"contact_email,omitempty"`
	OrganizationName string             `bson:"organization_name,omitempty" json:"organization_name,omitempty"`
	Phone            string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt        time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// ProfileUpdate carries the mutable profile fields of a user.
type ProfileUpdate struct {
	Address          string `bson:"address" json:"address"`
	ContactEmail     string `bson:"contact_email" json:"contact_email"`
	OrganizationName string `bson:"organization_name" json:"organization_name"`
	Phone            string `bson:"phone" json:"phone"`
}
