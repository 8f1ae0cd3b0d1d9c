// internal/app/features/events/eventcomplete.go
package events

import (
	"context"
	"net/http"

	"github.com/dalemusser/volunteerhub/internal/app/policy/eventpolicy"
	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type completeEventRequest struct {
	EventID          string  `json:"eventId"`
	HoursContributed float64 `json:"hoursContributed"`
}

// HandleCompleteEvent records a completion claim: the caller reports hours
// for an event they participated in. The hours land as a pending entry on
// the caller's account and are credited only when a reviewer approves them.
func (h *Handler) HandleCompleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req completeEventRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	eventID, err := primitive.ObjectIDFromHex(req.EventID)
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid event id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	event, err := h.Store.GetByID(ctx, eventID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if err := eventpolicy.CanSubmitHours(&event, userID, req.HoursContributed); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	entry, err := h.Users.SubmitHours(ctx, userID, eventID, req.HoursContributed, event.Date)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, entry)
}
