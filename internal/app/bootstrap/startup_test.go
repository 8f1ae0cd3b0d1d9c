package bootstrap

import (
	"testing"

	"github.com/dalemusser/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestRepairCounters_SweepsDrift(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}

	creator := fixtures.CreateUser(ctx, "Ada", "ada@test.com")
	team := fixtures.CreateTeam(ctx, "Crew", creator.ID, true)

	// Inject counter drift a crashed mirrored write would leave behind.
	if _, err := db.Collection("teams").UpdateByID(ctx, team.ID,
		bson.M{"$set": bson.M{"member_count": int64(42)}}); err != nil {
		t.Fatalf("inject drift: %v", err)
	}

	if err := repairCounters(ctx, deps, testLogger()); err != nil {
		t.Fatalf("repairCounters failed: %v", err)
	}

	var got struct {
		MemberCount int64 `bson:"member_count"`
	}
	if err := db.Collection("teams").FindOne(ctx, bson.M{"_id": team.ID}).Decode(&got); err != nil {
		t.Fatalf("reload team: %v", err)
	}
	if got.MemberCount != 1 {
		t.Errorf("member_count = %d, want 1", got.MemberCount)
	}
}

func TestRepairCounters_CleanIsNoop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	if err := repairCounters(ctx, deps, testLogger()); err != nil {
		t.Fatalf("repairCounters on empty database failed: %v", err)
	}
}
