// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hour entry statuses. An entry starts pending and moves exactly once to
// approved or rejected; terminal entries are never mutated again.
const (
	HourStatusPending  = "pending"
	HourStatusApproved = "approved"
	HourStatusRejected = "rejected"
)

// User represents a volunteer account.
//
// NOTE:
//   - EventsJoined and Teams are mirrors of the participant/member lists
//     embedded on the Event and Team documents. They are written as a
//     second, non-atomic step after the owning aggregate and are repairable
//     by the reconcile package.
//   - EventsCreated, TeamsCreated, HelpRequested and HelpOffered are
//     denormalized tallies recomputed from the backing collections; they
//     are never incremented blind.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	PasswordHash string             `bson:"password_hash" json:"-"`

	Skills []string `bson:"skills" json:"skills"`
	Causes []string `bson:"causes" json:"causes"`

	VolunteerHours float64 `bson:"volunteer_hours" json:"volunteer_hours"`
	Points         int64   `bson:"points" json:"points"`

	EventsCreated int64 `bson:"events_created" json:"events_created"`
	TeamsCreated  int64 `bson:"teams_created" json:"teams_created"`
	HelpRequested int64 `bson:"help_requested" json:"help_requested"`
	HelpOffered   int64 `bson:"help_offered" json:"help_offered"`

	PendingHours []PendingHourEntry `bson:"pending_hours" json:"pending_hours"`
	Certificates []Certificate      `bson:"certificates" json:"certificates"`

	EventsJoined []primitive.ObjectID `bson:"events_joined" json:"events_joined"`
	Teams        []primitive.ObjectID `bson:"teams" json:"teams"`

	// Version guards read-modify-write cycles on the document.
	Version int64 `bson:"version" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PendingHourEntry is a self-reported block of volunteer hours awaiting
// review. Verifications holds the reviewers who acted on the entry.
type PendingHourEntry struct {
	ID            primitive.ObjectID   `bson:"_id" json:"id"`
	EventID       primitive.ObjectID   `bson:"event_id" json:"event_id"`
	Hours         float64              `bson:"hours" json:"hours"`
	Date          time.Time            `bson:"date" json:"date"`
	Status        string               `bson:"status" json:"status"`
	Verifications []primitive.ObjectID `bson:"verifications" json:"verifications"`
}

// Certificate marks a volunteer-hour milestone (10 hours, 50 hours, ...).
type Certificate struct {
	Milestone     int64     `bson:"milestone" json:"milestone"`
	CertificateID string    `bson:"certificate_id" json:"certificate_id"`
	EarnedAt      time.Time `bson:"earned_at" json:"earned_at"`
}

// HasJoinedEvent reports whether the user's mirror set contains the event.
func (u *User) HasJoinedEvent(eventID primitive.ObjectID) bool {
	for _, id := range u.EventsJoined {
		if id == eventID {
			return true
		}
	}
	return false
}

// InTeam reports whether the user's mirror set contains the team.
func (u *User) InTeam(teamID primitive.ObjectID) bool {
	for _, id := range u.Teams {
		if id == teamID {
			return true
		}
	}
	return false
}

// PendingHourByID returns a pointer into PendingHours for the given entry,
// or nil when the entry does not exist.
func (u *User) PendingHourByID(entryID primitive.ObjectID) *PendingHourEntry {
	for i := range u.PendingHours {
		if u.PendingHours[i].ID == entryID {
			return &u.PendingHours[i]
		}
	}
	return nil
}
