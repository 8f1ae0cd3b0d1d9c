// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// ACCOUNT (no auth)
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	// Everything else requires authentication
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		// PROFILE
		pr.Get("/profile", h.HandleGetProfile)
		pr.Put("/profile", h.HandleUpdateProfile)

		// HOURS REVIEW
		pr.Get("/pending-hours", h.HandlePendingHours)
		pr.Put("/approve-hours/{userId}/{entryId}", h.HandleApproveHours)
		pr.Put("/reject-hours/{userId}/{entryId}", h.HandleRejectHours)
	})

	return r
}
