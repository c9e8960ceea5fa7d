// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mmanav02/WeHack/internal/domain/model"
)

// UserService defines the application operations user handlers call.
type UserService interface {
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	GetUser(ctx context.Context, userID string) (model.User, error)
}

// UsersHandler handles account requests.
type UsersHandler struct {
	deps UserService
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps UserService) *UsersHandler {
	return &UsersHandler{deps: deps}
}

type userRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	SMTPPassword string `json:"smtp_password,omitempty"`
}

func (u userRequest) validate() error {
	switch {
	case strings.TrimSpace(u.Username) == "":
		return errors.New("missing username")
	case strings.TrimSpace(u.Email) == "":
		return errors.New("missing email")
	}
	return nil
}

// userResponse never echoes the SMTP password back.
type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// HandleCreateUser handles POST /users requests.
func (h *UsersHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	saved, err := h.deps.CreateUser(r.Context(), model.User{
		Username:     req.Username,
		Email:        req.Email,
		SMTPPassword: req.SMTPPassword,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{ID: saved.ID, Username: saved.Username, Email: saved.Email})
}

// HandleGetUser handles GET /users/{id} requests.
func (h *UsersHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.deps.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{ID: u.ID, Username: u.Username, Email: u.Email})
}
