// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a scheduled volunteer activity with a participant cap.
//
// Participants are embedded on the event document; the user's EventsJoined
// field is a mirror maintained as a second write. len(Participants) never
// exceeds MaxParticipants and a user appears at most once.
type Event struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`

	Date      time.Time `bson:"date" json:"date"`
	StartTime string    `bson:"start_time" json:"start_time"` // "14:30"
	EndTime   string    `bson:"end_time" json:"end_time"`
	Location  string    `bson:"location" json:"location"`

	MaxParticipants int64  `bson:"max_participants" json:"max_participants"`
	Requirements    string `bson:"requirements" json:"requirements"`
	Image           string `bson:"image" json:"image"`

	CreatedBy    primitive.ObjectID   `bson:"created_by" json:"created_by"`
	Participants []primitive.ObjectID `bson:"participants" json:"participants"`

	Version int64 `bson:"version" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasParticipant reports whether the user is registered for the event.
func (e *Event) HasParticipant(userID primitive.ObjectID) bool {
	for _, id := range e.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// Full reports whether the event has reached its participant cap.
func (e *Event) Full() bool {
	return int64(len(e.Participants)) >= e.MaxParticipants
}
