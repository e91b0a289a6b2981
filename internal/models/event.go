package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminEvent is one append-only audit record of a staff action.
type AdminEvent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActorID    string             `bson:"actor_id" json:"actor_id"`
	ActorEmail string             `bson:"actor_email,omitempty" json:"actor_email,omitempty"`

	Action    string         `bson:"action" json:"action"`         // ex: application.status_changed
	SubjectID string         `bson:"subject_id" json:"subject_id"` // id of the record acted on
	Detail    map[string]any `bson:"detail,omitempty" json:"detail,omitempty"`

	OccurredAt time.Time `bson:"occurred_at" json:"occurred_at"`
}
