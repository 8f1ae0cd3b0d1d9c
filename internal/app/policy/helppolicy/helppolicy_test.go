package helppolicy

import (
	"errors"
	"testing"

	"github.com/dalemusser/volunteerhub/internal/domain/faults"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanManage(t *testing.T) {
	creator := primitive.NewObjectID()
	h := &models.HelpRequest{ID: primitive.NewObjectID(), CreatedBy: creator}

	if err := CanManage(h, creator); err != nil {
		t.Errorf("creator manage: %v", err)
	}
	if err := CanManage(h, primitive.NewObjectID()); !errors.Is(err, faults.ErrForbidden) {
		t.Errorf("non-creator manage should be forbidden, got %v", err)
	}
}

func TestValidateNew(t *testing.T) {
	good := &models.HelpRequest{
		Title:       "Need tutors",
		Description: "Weekly math tutoring for middle schoolers",
		Location:    "Community center",
		Urgency:     models.UrgencyMedium,
		Category:    "education",
	}
	if err := ValidateNew(good); err != nil {
		t.Errorf("valid request: %v", err)
	}

	cases := []struct {
		name string
		mod  func(h *models.HelpRequest)
	}{
		{"missing title", func(h *models.HelpRequest) { h.Title = "" }},
		{"missing description", func(h *models.HelpRequest) { h.Description = "" }},
		{"missing location", func(h *models.HelpRequest) { h.Location = "" }},
		{"bad urgency", func(h *models.HelpRequest) { h.Urgency = "apocalyptic" }},
		{"bad category", func(h *models.HelpRequest) { h.Category = "nonsense" }},
	}
	for _, tc := range cases {
		h := *good
		tc.mod(&h)
		if err := ValidateNew(&h); !errors.Is(err, faults.ErrValidation) {
			t.Errorf("%s: expected validation fault, got %v", tc.name, err)
		}
	}
}
