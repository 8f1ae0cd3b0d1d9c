package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/dalemusser/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx(t *testing.T) {
	id := primitive.NewObjectID()
	req := testutil.WithUser(httptest.NewRequest("GET", "/", nil), testutil.TestUser{
		ID:    id.Hex(),
		Name:  "Ada",
		Email: "ada@test.com",
	})

	name, userID, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected a user in context")
	}
	if name != "Ada" {
		t.Errorf("name = %q", name)
	}
	if userID != id {
		t.Errorf("userID = %s, want %s", userID.Hex(), id.Hex())
	}
}

func TestUserCtx_Anonymous(t *testing.T) {
	_, _, ok := authz.UserCtx(httptest.NewRequest("GET", "/", nil))
	if ok {
		t.Error("anonymous request should not resolve a user")
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	req := testutil.WithUser(httptest.NewRequest("GET", "/", nil), testutil.TestUser{
		ID:   "not-an-object-id",
		Name: "Ada",
	})
	if _, _, ok := authz.UserCtx(req); ok {
		t.Error("malformed id should fail closed")
	}
}
