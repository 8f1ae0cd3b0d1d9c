// internal/app/features/help/helpedit.go
package help

import (
	"context"
	"net/http"

	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/dalemusser/volunteerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	helpstore "github.com/dalemusser/volunteerhub/internal/app/store/help"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type updateHelpRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Urgency     *string `json:"urgency_level"`
	Category    *string `json:"category"`
	ContactInfo *string `json:"contact_info"`
}

// HandleUpdateRequest applies creator-only edits to a help request.
func (h *Handler) HandleUpdateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}
	requestID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid help request id")
		return
	}

	var req updateHelpRequest
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

	updated, err := h.Store.UpdateInfo(ctx, requestID, userID, helpstore.Update{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Urgency:     req.Urgency,
		Category:    req.Category,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

// HandleDeleteRequest deletes a help request (creator only).
func (h *Handler) HandleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}
	requestID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid help request id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Store.Delete(ctx, requestID, userID); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.Message(w, http.StatusOK, "help request deleted")
}
