// internal/app/features/help/handler.go
package help

import (
	helpstore "github.com/dalemusser/volunteerhub/internal/app/store/help"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the help-request feature.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Store *helpstore.Store
}

// NewHandler constructs a help Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		Store: helpstore.New(db, logger),
	}
}
