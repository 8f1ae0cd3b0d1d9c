// internal/app/features/teams/routes.go
package teams

import (
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Everything under /api/team requires authentication
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		// CREATE
		pr.Post("/create", h.HandleCreateTeam)

		// LIST
		pr.Get("/my-teams", h.HandleMyTeams)
		pr.Get("/public", h.HandlePublicTeams)
		pr.Get("/leaderboard", h.HandleLeaderboard)

		// MEMBERSHIP
		pr.Post("/join/{id}", h.HandleJoinTeam)
		pr.Post("/leave/{id}", h.HandleLeaveTeam)

		// VIEW / EDIT / DELETE
		pr.Get("/{id}", h.HandleGetTeam)
		pr.Put("/{id}", h.HandleUpdateTeam)
		pr.Delete("/{id}", h.HandleDeleteTeam)
	})

	return r
}
