package authgoogle_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/volunteerhub/internal/app/features/authgoogle"
	"github.com/dalemusser/volunteerhub/internal/testutil"
	"go.uber.org/zap"
)

func TestServeLogin_NotConfigured(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := authgoogle.NewHandler(db, "", "", "http://localhost:8080", zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeLogin(rec, httptest.NewRequest("GET", "/auth/google", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestServeLogin_RedirectsWithState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := authgoogle.NewHandler(db, "client-id", "client-secret", "http://localhost:8080", zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeLogin(rec, httptest.NewRequest("GET", "/auth/google", nil))

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want 307", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if loc == "" {
		t.Fatal("expected a redirect location")
	}

	var state string
	for _, c := range rec.Result().Cookies() {
		if c.Name == "volunteerhub-oauth-state" {
			state = c.Value
		}
	}
	if state == "" {
		t.Fatal("expected a state cookie")
	}
}

func TestServeCallback_RejectsBadState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := authgoogle.NewHandler(db, "client-id", "client-secret", "http://localhost:8080", zap.NewNop())

	req := httptest.NewRequest("GET", "/auth/google/callback?state=forged&code=abc", nil)
	req.AddCookie(&http.Cookie{Name: "volunteerhub-oauth-state", Value: "genuine"})
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestServeCallback_RejectsProviderError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := authgoogle.NewHandler(db, "client-id", "client-secret", "http://localhost:8080", zap.NewNop())

	req := httptest.NewRequest("GET", "/auth/google/callback?error=access_denied", nil)
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
