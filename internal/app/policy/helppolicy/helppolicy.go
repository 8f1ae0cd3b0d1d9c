// internal/app/policy/helppolicy/helppolicy.go

// Package helppolicy holds the rules for help requests.
package helppolicy

import (
	"github.com/dalemusser/volunteerhub/internal/domain/faults"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanManage reports whether the user may update or delete the request.
func CanManage(h *models.HelpRequest, userID primitive.ObjectID) error {
	if h.CreatedBy != userID {
		return faults.Forbidden("only the request creator can do that")
	}
	return nil
}

// ValidateNew checks the fields of a help request being created.
func ValidateNew(h *models.HelpRequest) error {
	if h.Title == "" {
		return faults.Validation("title is required")
	}
	if h.Description == "" {
		return faults.Validation("description is required")
	}
	if h.Location == "" {
		return faults.Validation("location is required")
	}
	if h.Urgency != "" && !models.ValidUrgency(h.Urgency) {
		return faults.Validation("unknown urgency level")
	}
	if h.Category != "" && !models.ValidHelpCategory(h.Category) {
		return faults.Validation("unknown category")
	}
	return nil
}
