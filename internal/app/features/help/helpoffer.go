// internal/app/features/help/helpoffer.go
package help

import (
	"context"
	"net/http"

	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type offerResponse struct {
	Request    models.HelpRequest `json:"request"`
	HasOffered bool               `json:"hasOffered"`
}

// HandleToggleOffer flips the caller's offer on a help request. Offer and
// withdraw both route here: absent adds the offer, present removes it, so
// retrying a request cannot double-count.
func (h *Handler) HandleToggleOffer(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}
	requestID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "requestId"))
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid help request id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	req, hasOffered, err := h.Store.ToggleOffer(ctx, requestID, userID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, offerResponse{Request: req, HasOffered: hasOffered})
}
