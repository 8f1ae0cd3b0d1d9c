// internal/app/features/teams/teamcreate.go
package teams

import (
	"context"
	"net/http"

	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/dalemusser/volunteerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
)

type createTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Cause       string `json:"cause"`
	Avatar      string `json:"avatar"`
	IsPublic    bool   `json:"is_public"`
}

// HandleCreateTeam creates a team with the caller as its sole admin member.
func (h *Handler) HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createTeamRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	team, err := h.Store.Create(ctx, models.Team{
		Name:        htmlsanitize.StripTags(req.Name),
		Description: htmlsanitize.StripTags(req.Description),
		Cause:       req.Cause,
		Avatar:      req.Avatar,
		IsPublic:    req.IsPublic,
		Creator:     userID,
	})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusCreated, team)
}
