// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	userstore "github.com/dalemusser/volunteerhub/internal/app/store/users"
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/domain/faults"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const stateCookie = "volunteerhub-oauth-state"

// Handler handles Google OAuth sign-in. A Google account that has no
// volunteer account yet gets one created on first sign-in, keyed by folded
// email; the callback issues the same bearer token as password login.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Users *userstore.Store

	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g. "https://volunteerhub.org/auth/google/callback"
}

// NewHandler creates a new Google OAuth handler.
func NewHandler(db *mongo.Database, clientID, clientSecret, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Log:          logger,
		Users:        userstore.New(db, logger),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
	}
}

// oauth2Config returns the Google OAuth2 configuration.
func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// ServeLogin initiates the OAuth flow by redirecting to Google's consent
// screen. The anti-forgery state rides in a short-lived cookie.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		respond.Fail(w, http.StatusServiceUnavailable, "google sign-in is not configured")
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		respond.Fail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	url := h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline)
	h.Log.Debug("initiating Google OAuth flow", zap.String("redirect_url", url))
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// ServeCallback exchanges the code for a token, fetches the Google profile,
// upserts the volunteer account by folded email and returns a bearer token.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		respond.Fail(w, http.StatusUnauthorized, "google sign-in was denied")
		return
	}

	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie(stateCookie)
	if state == "" || err != nil || cookie.Value != state {
		h.Log.Warn("invalid or missing OAuth state")
		respond.Fail(w, http.StatusUnauthorized, "invalid sign-in state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		respond.Fail(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	token, err := h.oauth2Config().Exchange(r.Context(), code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		respond.Fail(w, http.StatusUnauthorized, "could not verify the sign-in")
		return
	}

	googleUser, err := fetchGoogleUserInfo(r.Context(), token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		respond.Fail(w, http.StatusUnauthorized, "could not fetch the google profile")
		return
	}
	if googleUser.Email == "" {
		respond.Fail(w, http.StatusUnauthorized, "google account has no email")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.upsertUser(ctx, googleUser)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	su := &auth.SessionUser{ID: user.ID.Hex(), Name: user.Name, Email: user.Email}
	bearer, err := auth.IssueToken(su)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if err := auth.SignIn(w, r, su); err != nil {
		h.Log.Warn("session sign-in failed", zap.Error(err))
	}

	h.Log.Info("user signed in via Google OAuth", zap.String("user_id", user.ID.Hex()))
	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"token": bearer,
		"user":  user,
	})
}

// upsertUser finds the account matching the Google email or creates one.
func (h *Handler) upsertUser(ctx context.Context, gu *googleUserInfo) (models.User, error) {
	user, err := h.Users.GetByEmail(ctx, gu.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, faults.ErrNotFound) {
		return models.User{}, err
	}

	name := gu.Name
	if name == "" {
		name = gu.Email
	}
	created, err := h.Users.Create(ctx, models.User{
		Name:  name,
		Email: gu.Email,
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		// Lost the race against a concurrent first sign-in.
		return h.Users.GetByEmail(ctx, gu.Email)
	}
	return created, err
}

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &info, nil
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
