package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is a free-text testimonial about a camp.
type Feedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	CampName  string             `bson:"camp_name,omitempty" json:"camp_name,omitempty"`
	Rating    int                `bson:"rating,omitempty" json:"rating,omitempty"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
