// internal/app/features/authgoogle/routes.go
package authgoogle

import "github.com/go-chi/chi/v5"

// Routes returns the router for Google OAuth endpoints. Both routes are
// public; the callback signs the user in itself.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// GET /auth/google - redirect to Google's consent screen
	r.Get("/", h.ServeLogin)

	// GET /auth/google/callback - exchange the code and sign in
	r.Get("/callback", h.ServeCallback)

	return r
}
