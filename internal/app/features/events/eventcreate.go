// internal/app/features/events/eventcreate.go
package events

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/dalemusser/volunteerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
)

type createEventRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Date            time.Time `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	Location        string    `json:"location"`
	MaxParticipants int64     `json:"max_participants"`
	Requirements    string    `json:"requirements"`
	Image           string    `json:"image"`
}

// HandleCreateEvent creates an event owned by the caller.
func (h *Handler) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createEventRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	event, err := h.Store.Create(ctx, models.Event{
		Title:           htmlsanitize.StripTags(req.Title),
		Description:     htmlsanitize.StripTags(req.Description),
		Category:        req.Category,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Location:        htmlsanitize.StripTags(req.Location),
		MaxParticipants: req.MaxParticipants,
		Requirements:    htmlsanitize.StripTags(req.Requirements),
		Image:           req.Image,
		CreatedBy:       userID,
	})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusCreated, event)
}
