// internal/app/features/users/profile.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/dalemusser/volunteerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	userstore "github.com/dalemusser/volunteerhub/internal/app/store/users"
)

// HandleGetProfile returns the caller's own account.
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Store.GetByID(ctx, userID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Name   *string   `json:"name"`
	Email  *string   `json:"email"`
	Skills *[]string `json:"skills"`
	Causes *[]string `json:"causes"`
}

// HandleUpdateProfile applies edits to the caller's own account.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req updateProfileRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if req.Name != nil {
		clean := htmlsanitize.StripTags(*req.Name)
		req.Name = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Store.UpdateProfile(ctx, userID, userstore.ProfileUpdate{
		Name:   req.Name,
		Email:  req.Email,
		Skills: req.Skills,
		Causes: req.Causes,
	})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}
