// internal/app/features/teams/handler.go
package teams

import (
	teamstore "github.com/dalemusser/volunteerhub/internal/app/store/teams"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the teams feature.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Store *teamstore.Store
}

// NewHandler constructs a teams Handler. It is typically called from the
// bootstrap BuildHandler function, where the application's DB and logger
// are already initialized.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		Store: teamstore.New(db, logger),
	}
}
