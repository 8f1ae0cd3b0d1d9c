package eventpolicy

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/volunteerhub/internal/domain/faults"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func event(max int64, participants ...primitive.ObjectID) *models.Event {
	return &models.Event{
		ID:              primitive.NewObjectID(),
		Title:           "Beach Cleanup",
		Date:            time.Now().Add(24 * time.Hour),
		MaxParticipants: max,
		CreatedBy:       primitive.NewObjectID(),
		Participants:    participants,
	}
}

func TestCanJoin(t *testing.T) {
	joined := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	open := event(3, joined)
	if err := CanJoin(open, stranger); err != nil {
		t.Errorf("join with room: %v", err)
	}
	if err := CanJoin(open, joined); !errors.Is(err, faults.ErrConflict) {
		t.Errorf("duplicate join should conflict, got %v", err)
	}

	full := event(1, joined)
	if err := CanJoin(full, stranger); !errors.Is(err, faults.ErrConflict) {
		t.Errorf("joining a full event should conflict, got %v", err)
	}
}

func TestCanLeave(t *testing.T) {
	joined := primitive.NewObjectID()
	e := event(5, joined)

	if err := CanLeave(e, joined); err != nil {
		t.Errorf("participant leave: %v", err)
	}
	if err := CanLeave(e, primitive.NewObjectID()); !errors.Is(err, faults.ErrConflict) {
		t.Errorf("non-participant leave should conflict, got %v", err)
	}
}

func TestCanManage(t *testing.T) {
	e := event(5)
	if err := CanManage(e, e.CreatedBy); err != nil {
		t.Errorf("creator manage: %v", err)
	}
	if err := CanManage(e, primitive.NewObjectID()); !errors.Is(err, faults.ErrForbidden) {
		t.Errorf("non-creator manage should be forbidden, got %v", err)
	}
}

func TestCanSubmitHours(t *testing.T) {
	joined := primitive.NewObjectID()
	e := event(5, joined)

	if err := CanSubmitHours(e, joined, 3.5); err != nil {
		t.Errorf("participant submitting positive hours: %v", err)
	}
	if err := CanSubmitHours(e, joined, 0); !errors.Is(err, faults.ErrValidation) {
		t.Errorf("zero hours should fail validation, got %v", err)
	}
	if err := CanSubmitHours(e, joined, -2); !errors.Is(err, faults.ErrValidation) {
		t.Errorf("negative hours should fail validation, got %v", err)
	}
	if err := CanSubmitHours(e, primitive.NewObjectID(), 2); !errors.Is(err, faults.ErrForbidden) {
		t.Errorf("non-participant submit should be forbidden, got %v", err)
	}
}

func TestValidateNew(t *testing.T) {
	good := event(10)
	if err := ValidateNew(good); err != nil {
		t.Errorf("valid event: %v", err)
	}
	if err := ValidateNew(&models.Event{Title: "X", Date: time.Now()}); !errors.Is(err, faults.ErrValidation) {
		t.Errorf("zero capacity should fail validation, got %v", err)
	}
	if err := ValidateNew(&models.Event{MaxParticipants: 5, Date: time.Now()}); !errors.Is(err, faults.ErrValidation) {
		t.Errorf("missing title should fail validation, got %v", err)
	}
}
