// internal/app/features/events/handler.go
package events

import (
	eventstore "github.com/dalemusser/volunteerhub/internal/app/store/events"
	userstore "github.com/dalemusser/volunteerhub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the events feature. It
// carries the user store as well because completing an event appends a
// pending hour entry to the participant's account.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Store *eventstore.Store
	Users *userstore.Store
}

// NewHandler constructs an events Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		Store: eventstore.New(db, logger),
		Users: userstore.New(db, logger),
	}
}
