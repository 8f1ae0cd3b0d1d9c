// internal/app/features/users/login.go
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/domain/faults"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and issues a bearer token. A missing
// account and a wrong password both return the same 401 so the endpoint
// cannot be used to probe for registered emails.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		respond.Fail(w, http.StatusBadRequest, "email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Store.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, faults.ErrNotFound) {
			respond.Fail(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respond.Error(w, h.Log, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respond.Fail(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	su := &auth.SessionUser{ID: user.ID.Hex(), Name: user.Name, Email: user.Email}
	token, err := auth.IssueToken(su)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if err := auth.SignIn(w, r, su); err != nil {
		h.Log.Warn("session sign-in failed", zap.Error(err))
	}

	respond.JSON(w, http.StatusOK, authResponse{Token: token, User: user})
}
