// internal/app/features/help/routes.go
package help

import (
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Everything under /api/help requires authentication
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		// CREATE
		pr.Post("/create", h.HandleCreateRequest)

		// LIST
		pr.Get("/", h.HandleListRequests)

		// OFFER TOGGLE (offer and withdraw are the same idempotent flip)
		pr.Post("/offer/{requestId}", h.HandleToggleOffer)
		pr.Post("/withdraw/{requestId}", h.HandleToggleOffer)

		// VIEW / EDIT / DELETE
		pr.Get("/{id}", h.HandleGetRequest)
		pr.Put("/{id}", h.HandleUpdateRequest)
		pr.Delete("/{id}", h.HandleDeleteRequest)
	})

	return r
}
