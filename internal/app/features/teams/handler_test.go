package teams_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/volunteerhub/internal/app/features/teams"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/dalemusser/volunteerhub/internal/testutil"
	"go.uber.org/zap"
)

func TestHandleCreateTeam(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := teams.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Ada", "ada@test.com")

	req := testutil.NewJSONRequest(t, "POST", "/api/team/create", map[string]interface{}{
		"name":      "River Crew",
		"cause":     "environment",
		"is_public": true,
	})
	req = testutil.WithUser(req, testutil.AsTestUser(creator))
	rec := httptest.NewRecorder()
	h.HandleCreateTeam(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	success, _, data := testutil.DecodeEnvelope(t, rec)
	if !success {
		t.Fatal("expected a success envelope")
	}
	var team models.Team
	if err := json.Unmarshal(data, &team); err != nil {
		t.Fatalf("decode team: %v", err)
	}
	if team.MemberCount != 1 {
		t.Errorf("member_count = %d, want 1", team.MemberCount)
	}
	if len(team.Members) != 1 || team.Members[0].Role != models.TeamRoleAdmin {
		t.Error("creator should be the sole admin member")
	}
}

func TestHandleCreateTeam_Invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := teams.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Ada", "ada@test.com")

	req := testutil.NewJSONRequest(t, "POST", "/api/team/create", map[string]interface{}{
		"cause": "environment",
	})
	req = testutil.WithUser(req, testutil.AsTestUser(creator))
	rec := httptest.NewRecorder()
	h.HandleCreateTeam(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleJoinAndLeaveTeam(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := teams.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Ada", "ada@test.com")
	joiner := fixtures.CreateUser(ctx, "Grace", "grace@test.com")
	team := fixtures.CreateTeam(ctx, "Crew", creator.ID, true)

	req := testutil.NewAuthenticatedRequest("POST", "/api/team/join/"+team.ID.Hex(), testutil.AsTestUser(joiner))
	req = testutil.WithChiURLParam(req, "id", team.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleJoinTeam(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("join status = %d: %s", rec.Code, rec.Body.String())
	}
	_, _, data := testutil.DecodeEnvelope(t, rec)
	var got models.Team
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode team: %v", err)
	}
	if got.MemberCount != 2 {
		t.Errorf("member_count = %d, want 2", got.MemberCount)
	}

	// Duplicate join conflicts.
	req = testutil.NewAuthenticatedRequest("POST", "/api/team/join/"+team.ID.Hex(), testutil.AsTestUser(joiner))
	req = testutil.WithChiURLParam(req, "id", team.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleJoinTeam(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate join status = %d, want 409", rec.Code)
	}

	// Member leaves cleanly.
	req = testutil.NewAuthenticatedRequest("POST", "/api/team/leave/"+team.ID.Hex(), testutil.AsTestUser(joiner))
	req = testutil.WithChiURLParam(req, "id", team.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleLeaveTeam(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("leave status = %d: %s", rec.Code, rec.Body.String())
	}

	// The creator may never leave.
	req = testutil.NewAuthenticatedRequest("POST", "/api/team/leave/"+team.ID.Hex(), testutil.AsTestUser(creator))
	req = testutil.WithChiURLParam(req, "id", team.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleLeaveTeam(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("creator leave status = %d, want 403", rec.Code)
	}
}

func TestHandleGetTeam_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := teams.NewHandler(db, zap.NewNop())

	req := testutil.NewRequest("GET", "/api/team/ffffffffffffffffffffffff")
	req = testutil.WithChiURLParam(req, "id", "ffffffffffffffffffffffff")
	rec := httptest.NewRecorder()
	h.HandleGetTeam(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleGetTeam_BadID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := teams.NewHandler(db, zap.NewNop())

	req := testutil.NewRequest("GET", "/api/team/nope")
	req = testutil.WithChiURLParam(req, "id", "nope")
	rec := httptest.NewRecorder()
	h.HandleGetTeam(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleUpdateTeam_CreatorOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := teams.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Ada", "ada@test.com")
	other := fixtures.CreateUser(ctx, "Grace", "grace@test.com")
	team := fixtures.CreateTeam(ctx, "Crew", creator.ID, true)

	body := map[string]interface{}{"description": "we clean rivers"}

	req := testutil.NewJSONRequest(t, "PUT", "/api/team/"+team.ID.Hex(), body)
	req = testutil.WithUser(req, testutil.AsTestUser(other))
	req = testutil.WithChiURLParam(req, "id", team.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdateTeam(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-creator update status = %d, want 403", rec.Code)
	}

	req = testutil.NewJSONRequest(t, "PUT", "/api/team/"+team.ID.Hex(), body)
	req = testutil.WithUser(req, testutil.AsTestUser(creator))
	req = testutil.WithChiURLParam(req, "id", team.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleUpdateTeam(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("creator update status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleMyTeams(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := teams.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Ada", "ada@test.com")
	outsider := fixtures.CreateUser(ctx, "Grace", "grace@test.com")
	fixtures.CreateTeam(ctx, "Crew", creator.ID, true)

	req := testutil.NewAuthenticatedRequest("GET", "/api/team/my-teams", testutil.AsTestUser(outsider))
	rec := httptest.NewRecorder()
	h.HandleMyTeams(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	_, _, data := testutil.DecodeEnvelope(t, rec)
	var list []models.Team
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("outsider should see no teams, got %d", len(list))
	}
}
