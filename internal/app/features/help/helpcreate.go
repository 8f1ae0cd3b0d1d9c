// internal/app/features/help/helpcreate.go
package help

import (
	"context"
	"net/http"

	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/dalemusser/volunteerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
)

type createHelpRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Urgency     string `json:"urgency_level"`
	Category    string `json:"category"`
	ContactInfo string `json:"contact_info"`
}

// HandleCreateRequest creates a help request owned by the caller.
func (h *Handler) HandleCreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createHelpRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	created, err := h.Store.Create(ctx, models.HelpRequest{
		Title:       htmlsanitize.StripTags(req.Title),
		Description: htmlsanitize.StripTags(req.Description),
		Location:    htmlsanitize.StripTags(req.Location),
		Urgency:     req.Urgency,
		Category:    req.Category,
		ContactInfo: htmlsanitize.StripTags(req.ContactInfo),
		CreatedBy:   userID,
	})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusCreated, created)
}
