package users

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dalemusser/shoplist/internal/app/features/shared/respond"
	"github.com/dalemusser/shoplist/internal/app/system/auth"
	"github.com/dalemusser/shoplist/internal/app/system/timeouts"
	"github.com/dalemusser/shoplist/internal/app/system/token"
	"github.com/dalemusser/shoplist/internal/domain/apperr"
	"github.com/dalemusser/shoplist/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the /api/users endpoints.
type Handler struct {
	Accounts *auth.Service
	Tokens   *token.Issuer
	Log      *zap.Logger
}

func NewHandler(accounts *auth.Service, tokens *token.Issuer, logger *zap.Logger) *Handler {
	return &Handler{Accounts: accounts, Tokens: tokens, Log: logger}
}

// PublicUser is the user profile exposed over the API. Password fields
// never appear here.
type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Public maps a stored user to its API profile.
func Public(u *models.User) *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// userPayload is the request body for register and update.
type userPayload struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Token     string `json:"token"`
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", apperr.ErrInvalidArgument)
	}
	return nil
}

// Authenticate handles POST /api/users/authenticate. Valid credentials
// yield the public profile plus a signed session token; anything else is
// a 401.
func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req authRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	user, err := h.Accounts.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if user == nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized))
		return
	}

	signed, err := h.Tokens.Issue(user.ID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusOK, authResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Token:     signed,
	})
}

// Register handles POST /api/users. Success is a bare 200; a taken email
// is a 409 and validation failures are 400.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req userPayload
	if err := decode(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	_, err := h.Accounts.Register(ctx, models.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, req.Password)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// List handles GET /api/users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.Accounts.All(ctx)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	out := make([]PublicUser, 0, len(all))
	for i := range all {
		out = append(out, *Public(&all[i]))
	}
	respond.JSON(w, http.StatusOK, out)
}

// Get handles GET /api/users/{id}. An unknown id yields 200 with a null
// body; clients treat the null as "no such user".
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Accounts.ByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, Public(user))
}

// Update handles PUT /api/users/{id}. The identifier in the path wins
// over anything in the body. Echoes the updated public profile.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req userPayload
	if err := decode(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	updated, err := h.Accounts.Update(ctx, models.User{
		ID:        chi.URLParam(r, "id"),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, req.Password)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	respond.JSON(w, http.StatusOK, Public(&updated))
}

// Delete handles DELETE /api/users/{id}. Always 200, whether or not a
// document was removed.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Accounts.Remove(ctx, chi.URLParam(r, "id")); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
