package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Camp is an offering published by an organizer. Participants is a derived
// counter: it must track the number of non-withdrawn registrations that
// reference this camp.
type Camp struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name                   string             `bson:"name" json:"name"`
	DateTime               string             `bson:"date_time,omitempty" json:"date_time,omitempty"`
	Fees                   float64            `bson:"fees" json:"fees"`
	Location               string             `bson:"location,omitempty" json:"location,omitempty"`
	Description            string             `bson:"description,omitempty" json:"description,omitempty"`
	Tags                   []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	HealthcareProfessional string             `bson:"healthcare_professional,omitempty" json:"healthcare_professional,omitempty"`
	Participants           int64              `bson:"participants" json:"participants"`
	OrganizerEmail         string             `bson:"organizer_email,omitempty" json:"organizer_email,omitempty"`
	CreatedAt              time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// CampUpdate carries the editable camp attributes.
type CampUpdate struct {
	Name                   string   `bson:"name,omitempty" json:"name,omitempty"`
	DateTime               string   `bson:"date_time,omitempty" json:"date_time,omitempty"`
	Fees                   *float64 `bson:"fees,omitempty" json:"fees,omitempty"`
	Location               string   `bson:"location,omitempty" json:"location,omitempty"`
	Description            string   `bson:"description,omitempty" json:"description,omitempty"`
	Tags                   []string `bson:"tags,omitempty" json:"tags,omitempty"`
	HealthcareProfessional string   `bson:"healthcare_professional,omitempty" json:"healthcare_professional,omitempty"`
}
