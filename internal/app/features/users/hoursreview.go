// internal/app/features/users/hoursreview.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandlePendingHours returns every user with at least one pending hour
// entry, for the reviewer queue.
func (h *Handler) HandlePendingHours(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pending, err := h.Store.ListPendingReviews(ctx)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, pending)
}

type reviewResponse struct {
	User         models.User          `json:"user"`
	Certificates []models.Certificate `json:"certificates,omitempty"`
}

// HandleApproveHours approves a pending entry: the volunteer's hours, points
// and certificates are credited in one guarded write, then the hours are
// propagated to every team the volunteer belongs to. The propagation is a
// best-effort mirror; a failure is logged and repaired by reconciliation.
func (h *Handler) HandleApproveHours(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := authz.UserID(r)
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}
	volunteerID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid user id")
		return
	}
	entryID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "entryId"))
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	user, earned, err := h.Store.ApproveHours(ctx, volunteerID, entryID, reviewerID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	if entry := user.PendingHourByID(entryID); entry != nil {
		if err := h.Teams.AddContributedHours(ctx, user.Teams, entry.Hours); err != nil {
			h.Log.Warn("partial write: team hours not updated",
				zap.String("user_id", user.ID.Hex()),
				zap.Error(err))
		}
	}

	respond.JSON(w, http.StatusOK, reviewResponse{User: user, Certificates: earned})
}

// HandleRejectHours rejects a pending entry. No hours or points are
// credited, and the entry can never be approved afterwards.
func (h *Handler) HandleRejectHours(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := authz.UserID(r)
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}
	volunteerID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid user id")
		return
	}
	entryID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "entryId"))
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Store.RejectHours(ctx, volunteerID, entryID, reviewerID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, reviewResponse{User: user})
}
