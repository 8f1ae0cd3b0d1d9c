// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authgooglefeature "github.com/dalemusser/volunteerhub/internal/app/features/authgoogle"
	eventsfeature "github.com/dalemusser/volunteerhub/internal/app/features/events"
	healthfeature "github.com/dalemusser/volunteerhub/internal/app/features/health"
	helpfeature "github.com/dalemusser/volunteerhub/internal/app/features/help"
	teamsfeature "github.com/dalemusser/volunteerhub/internal/app/features/teams"
	usersfeature "github.com/dalemusser/volunteerhub/internal/app/features/users"
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The router mounts:
//   - /health         liveness probe (DB ping)
//   - /api/user       accounts, profile, hours review
//   - /api/team       teams, membership, leaderboard
//   - /api/event      events, registration, completion claims
//   - /api/help       help requests and offer toggling
//   - /auth/google    Google OAuth sign-in
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: resolves the bearer token or session cookie
	// into the request context for every route.
	r.Use(auth.LoadUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// API surface
	usersHandler := usersfeature.NewHandler(db, logger)
	r.Mount("/api/user", usersfeature.Routes(usersHandler))

	teamsHandler := teamsfeature.NewHandler(db, logger)
	r.Mount("/api/team", teamsfeature.Routes(teamsHandler))

	eventsHandler := eventsfeature.NewHandler(db, logger)
	r.Mount("/api/event", eventsfeature.Routes(eventsHandler))

	helpHandler := helpfeature.NewHandler(db, logger)
	r.Mount("/api/help", helpfeature.Routes(helpHandler))

	// Google OAuth
	googleHandler := authgooglefeature.NewHandler(db,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	return r, nil
}
