// internal/app/features/events/routes.go
package events

import (
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Everything under /api/event requires authentication
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		// CREATE
		pr.Post("/create", h.HandleCreateEvent)

		// LIST
		pr.Get("/", h.HandleListEvents)

		// PARTICIPATION
		pr.Post("/join/{id}", h.HandleJoinEvent)
		pr.Post("/leave/{id}", h.HandleLeaveEvent)
		pr.Post("/complete", h.HandleCompleteEvent)

		// VIEW / EDIT / DELETE
		pr.Get("/{id}", h.HandleGetEvent)
		pr.Put("/{id}", h.HandleUpdateEvent)
		pr.Delete("/{id}", h.HandleDeleteEvent)
	})

	return r
}
