// internal/app/features/events/eventedit.go
package events

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/dalemusser/volunteerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	eventstore "github.com/dalemusser/volunteerhub/internal/app/store/events"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type updateEventRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Category        *string    `json:"category"`
	Date            *time.Time `json:"date"`
	StartTime       *string    `json:"start_time"`
	EndTime         *string    `json:"end_time"`
	Location        *string    `json:"location"`
	MaxParticipants *int64     `json:"max_participants"`
	Requirements    *string    `json:"requirements"`
	Image           *string    `json:"image"`
}

// HandleUpdateEvent applies creator-only edits. Capacity may not drop below
// the current registration count.
func (h *Handler) HandleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}
	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req updateEventRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if req.Title != nil {
		clean := htmlsanitize.StripTags(*req.Title)
		req.Title = &clean
	}
	if req.Description != nil {
		clean := htmlsanitize.StripTags(*req.Description)
		req.Description = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	event, err := h.Store.UpdateInfo(ctx, eventID, userID, eventstore.Update{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Location:        req.Location,
		MaxParticipants: req.MaxParticipants,
		Requirements:    req.Requirements,
		Image:           req.Image,
	})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, event)
}

// HandleDeleteEvent deletes an event (creator only) and resyncs every
// participant's mirror.
func (h *Handler) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}
	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid event id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Store.Delete(ctx, eventID, userID); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.Message(w, http.StatusOK, "event deleted")
}
