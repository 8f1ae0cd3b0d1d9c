// internal/app/features/users/register.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/volunteerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	validate "github.com/dalemusser/waffle/pantry/validate"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

type registerRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Skills   []string `json:"skills"`
	Causes   []string `json:"causes"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// HandleRegister creates a volunteer account and signs the caller in.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	req.Name = htmlsanitize.StripTags(req.Name)
	switch {
	case req.Name == "":
		respond.Fail(w, http.StatusBadRequest, "name is required")
		return
	case req.Email == "" || !validate.SimpleEmailValid(req.Email):
		respond.Fail(w, http.StatusBadRequest, "a valid email is required")
		return
	case len(req.Password) < minPasswordLen:
		respond.Fail(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Store.Create(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Skills:       req.Skills,
		Causes:       req.Causes,
	})
	if err != nil {
		respond.Error(w, h.Log, err)
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

	respond.JSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}
