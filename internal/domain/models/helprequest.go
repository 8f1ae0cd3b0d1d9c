// internal/domain/models/helprequest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Help request urgency levels.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyUrgent = "urgent"
)

// Categories a help request may fall under.
var HelpCategories = []string{
	"general",
	"education",
	"health",
	"environment",
	"food",
	"homelessness",
	"animals",
	"elderly",
	"other",
}

// HelpRequest is a community request that volunteers can offer to help with.
//
// Helpers is the backing list; Offers is the denormalized count and always
// equals len(Helpers). A user appears in Helpers at most once; offering is
// an idempotent toggle.
type HelpRequest struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Location    string             `bson:"location" json:"location"`
	Urgency     string             `bson:"urgency_level" json:"urgency_level"`
	Category    string             `bson:"category" json:"category"`
	ContactInfo string             `bson:"contact_info" json:"contact_info"`

	CreatedBy primitive.ObjectID   `bson:"created_by" json:"created_by"`
	Helpers   []primitive.ObjectID `bson:"helpers" json:"helpers"`
	Offers    int64                `bson:"offers" json:"offers"`

	Version int64 `bson:"version" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasHelper reports whether the user has an active offer on the request.
func (h *HelpRequest) HasHelper(userID primitive.ObjectID) bool {
	for _, id := range h.Helpers {
		if id == userID {
			return true
		}
	}
	return false
}

// ValidUrgency reports whether level is a supported urgency level.
func ValidUrgency(level string) bool {
	return level == UrgencyLow || level == UrgencyMedium || level == UrgencyUrgent
}

// ValidHelpCategory reports whether category is supported.
func ValidHelpCategory(category string) bool {
	for _, c := range HelpCategories {
		if c == category {
			return true
		}
	}
	return false
}
