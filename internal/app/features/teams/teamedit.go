// internal/app/features/teams/teamedit.go
package teams

import (
	"context"
	"net/http"

	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/dalemusser/volunteerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	teamstore "github.com/dalemusser/volunteerhub/internal/app/store/teams"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type updateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Cause       *string `json:"cause"`
	Avatar      *string `json:"avatar"`
	IsPublic    *bool   `json:"is_public"`
}

// HandleUpdateTeam applies creator-only edits to a team.
func (h *Handler) HandleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}
	teamID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid team id")
		return
	}

	var req updateTeamRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if req.Name != nil {
		clean := htmlsanitize.StripTags(*req.Name)
		req.Name = &clean
	}
	if req.Description != nil {
		clean := htmlsanitize.StripTags(*req.Description)
		req.Description = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	team, err := h.Store.UpdateInfo(ctx, teamID, userID, teamstore.Update{
		Name:        req.Name,
		Description: req.Description,
		Cause:       req.Cause,
		Avatar:      req.Avatar,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, team)
}
