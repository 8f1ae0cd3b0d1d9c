package helpstore_test

import (
	"errors"
	"testing"

	helpstore "github.com/dalemusser/volunteerhub/internal/app/store/help"
	"github.com/dalemusser/volunteerhub/internal/domain/faults"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/dalemusser/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := helpstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Ada", "ada@test.com")

	created, err := store.Create(ctx, models.HelpRequest{
		Title:       "Need tutors",
		Description: "Weekly math tutoring",
		Location:    "Community center",
		CreatedBy:   creator.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Offers != 0 || len(created.Helpers) != 0 {
		t.Error("new request should start with no offers")
	}
	if created.Urgency != models.UrgencyMedium {
		t.Errorf("default urgency = %q, want %q", created.Urgency, models.UrgencyMedium)
	}

	var owner models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": creator.ID}).Decode(&owner); err != nil {
		t.Fatalf("find creator: %v", err)
	}
	if owner.HelpRequested != 1 {
		t.Errorf("help_requested = %d, want 1", owner.HelpRequested)
	}
}

func TestStore_Create_MissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := helpstore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.HelpRequest{Title: "Only a title"})
	if !errors.Is(err, faults.ErrValidation) {
		t.Errorf("missing fields should fail validation, got %v", err)
	}
}

func TestStore_ToggleOffer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := helpstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Ada", "ada@test.com")
	helper := fixtures.CreateUser(ctx, "Grace", "grace@test.com")
	req := fixtures.CreateHelpRequest(ctx, "Need drivers", creator.ID)

	// First toggle adds the offer.
	got, hasOffered, err := store.ToggleOffer(ctx, req.ID, helper.ID)
	if err != nil {
		t.Fatalf("ToggleOffer failed: %v", err)
	}
	if !hasOffered {
		t.Error("first toggle should report an active offer")
	}
	if !got.HasHelper(helper.ID) {
		t.Error("helper missing from list")
	}
	if got.Offers != 1 {
		t.Errorf("offers = %d, want 1", got.Offers)
	}

	// Second toggle withdraws it.
	got, hasOffered, err = store.ToggleOffer(ctx, req.ID, helper.ID)
	if err != nil {
		t.Fatalf("second ToggleOffer failed: %v", err)
	}
	if hasOffered {
		t.Error("second toggle should report no active offer")
	}
	if got.HasHelper(helper.ID) {
		t.Error("helper should be removed")
	}
	if got.Offers != 0 {
		t.Errorf("offers = %d, want 0", got.Offers)
	}

	// offers always equals len(helpers).
	if got.Offers != int64(len(got.Helpers)) {
		t.Errorf("offers %d != len(helpers) %d", got.Offers, len(got.Helpers))
	}
}

func TestStore_ToggleOffer_MirrorsHelpOffered(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := helpstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Ada", "ada@test.com")
	helper := fixtures.CreateUser(ctx, "Grace", "grace@test.com")
	req := fixtures.CreateHelpRequest(ctx, "Need drivers", creator.ID)

	if _, _, err := store.ToggleOffer(ctx, req.ID, helper.ID); err != nil {
		t.Fatalf("ToggleOffer: %v", err)
	}

	var u models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": helper.ID}).Decode(&u); err != nil {
		t.Fatalf("find helper: %v", err)
	}
	if u.HelpOffered != 1 {
		t.Errorf("help_offered = %d, want 1", u.HelpOffered)
	}

	if _, _, err := store.ToggleOffer(ctx, req.ID, helper.ID); err != nil {
		t.Fatalf("ToggleOffer: %v", err)
	}
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": helper.ID}).Decode(&u); err != nil {
		t.Fatalf("find helper: %v", err)
	}
	if u.HelpOffered != 0 {
		t.Errorf("help_offered after withdraw = %d, want 0", u.HelpOffered)
	}
}

func TestStore_ToggleOffer_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := helpstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	helper := fixtures.CreateUser(ctx, "Grace", "grace@test.com")

	_, _, err := store.ToggleOffer(ctx, primitive.NewObjectID(), helper.ID)
	if !errors.Is(err, faults.ErrNotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestStore_UpdateAndDelete_CreatorOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := helpstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Ada", "ada@test.com")
	other := fixtures.CreateUser(ctx, "Grace", "grace@test.com")
	req := fixtures.CreateHelpRequest(ctx, "Need drivers", creator.ID)

	urgent := models.UrgencyUrgent
	if _, err := store.UpdateInfo(ctx, req.ID, other.ID, helpstore.Update{Urgency: &urgent}); !errors.Is(err, faults.ErrForbidden) {
		t.Errorf("non-creator update should be forbidden, got %v", err)
	}
	updated, err := store.UpdateInfo(ctx, req.ID, creator.ID, helpstore.Update{Urgency: &urgent})
	if err != nil {
		t.Fatalf("UpdateInfo failed: %v", err)
	}
	if updated.Urgency != models.UrgencyUrgent {
		t.Errorf("urgency = %q, want %q", updated.Urgency, models.UrgencyUrgent)
	}

	if err := store.Delete(ctx, req.ID, other.ID); !errors.Is(err, faults.ErrForbidden) {
		t.Errorf("non-creator delete should be forbidden, got %v", err)
	}
	if err := store.Delete(ctx, req.ID, creator.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, req.ID); !errors.Is(err, faults.ErrNotFound) {
		t.Errorf("request should be gone, got %v", err)
	}
}
