// internal/app/policy/eventpolicy/eventpolicy.go

// Package eventpolicy holds the participation rules for events.
package eventpolicy

import (
	"github.com/dalemusser/volunteerhub/internal/domain/faults"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanJoin reports whether the user may register for the event. The capacity
// check runs against the participant list being replaced, so a concurrent
// fill is caught by the version guard rather than overbooking.
func CanJoin(e *models.Event, userID primitive.ObjectID) error {
	if e.HasParticipant(userID) {
		return faults.Conflict("already registered for this event")
	}
	if e.Full() {
		return faults.Conflict("this event is full")
	}
	return nil
}

// CanLeave reports whether the user may withdraw from the event.
func CanLeave(e *models.Event, userID primitive.ObjectID) error {
	if !e.HasParticipant(userID) {
		return faults.Conflict("you are not registered for this event")
	}
	return nil
}

// CanManage reports whether the user may update or delete the event.
func CanManage(e *models.Event, userID primitive.ObjectID) error {
	if e.CreatedBy != userID {
		return faults.Forbidden("only the event creator can do that")
	}
	return nil
}

// CanSubmitHours checks a completion claim against the event.
func CanSubmitHours(e *models.Event, userID primitive.ObjectID, hours float64) error {
	if hours <= 0 {
		return faults.Validation("hours must be greater than zero")
	}
	if !e.HasParticipant(userID) {
		return faults.Forbidden("you did not participate in this event")
	}
	return nil
}

// ValidateNew checks the fields of an event being created.
func ValidateNew(e *models.Event) error {
	if e.Title == "" {
		return faults.Validation("event title is required")
	}
	if e.MaxParticipants <= 0 {
		return faults.Validation("max participants must be greater than zero")
	}
	if e.Date.IsZero() {
		return faults.Validation("event date is required")
	}
	return nil
}
