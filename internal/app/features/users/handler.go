// internal/app/features/users/handler.go
package users

import (
	teamstore "github.com/dalemusser/volunteerhub/internal/app/store/teams"
	userstore "github.com/dalemusser/volunteerhub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the users feature. It
// carries the team store as well because approving hours propagates the
// credited hours to every team the volunteer belongs to.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Store *userstore.Store
	Teams *teamstore.Store
}

// NewHandler constructs a users Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		Store: userstore.New(db, logger),
		Teams: teamstore.New(db, logger),
	}
}
