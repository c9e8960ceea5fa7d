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
	"github.com/mmanav02/WeHack/internal/notify"
)

// ObserverService defines the application operations observer handlers call.
type ObserverService interface {
	RegisterObserver(ctx context.Context, eventID string, entry model.ObserverEntry) error
	ApproveJudge(ctx context.Context, eventID, userID string) error
	PendingJudges(ctx context.Context, eventID string) ([]model.ObserverEntry, error)
	Broadcast(ctx context.Context, eventID, subject, body string) (notify.Report, error)
}

// ObserversHandler handles observer registration and broadcast requests.
type ObserversHandler struct {
	deps ObserverService
}

// NewObserversHandler creates a new observers handler.
func NewObserversHandler(deps ObserverService) *ObserversHandler {
	return &ObserversHandler{deps: deps}
}

type observerRequest struct {
	UserID  string `json:"user_id"`
	Address string `json:"address"`
	Role    string `json:"role"`
}

func (o observerRequest) validate() error {
	switch {
	case strings.TrimSpace(o.UserID) == "":
		return errors.New("missing user_id")
	case strings.TrimSpace(o.Address) == "":
		return errors.New("missing address")
	}
	switch model.Role(o.Role) {
	case model.RoleOrganizer, model.RoleJudge, model.RoleParticipant:
		return nil
	default:
		return fmt.Errorf("unknown role %q", o.Role)
	}
}

type observerResponse struct {
	UserID  string `json:"user_id"`
	Address string `json:"address"`
	Role    string `json:"role"`
	Status  string `json:"status"`
}

type broadcastRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type broadcastResponse struct {
	Attempted int `json:"attempted"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

// HandleRegisterObserver handles POST /events/{id}/observers requests.
// Judges start out pending approval; everyone else is live immediately.
func (h *ObserversHandler) HandleRegisterObserver(w http.ResponseWriter, r *http.Request) {
	var req observerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	entry := model.ObserverEntry{
		UserID:  req.UserID,
		Address: req.Address,
		Role:    model.Role(req.Role),
	}
	if err := h.deps.RegisterObserver(r.Context(), r.PathValue("id"), entry); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleApproveJudge handles POST /events/{id}/observers/{user}/approve
// requests.
func (h *ObserversHandler) HandleApproveJudge(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.ApproveJudge(r.Context(), r.PathValue("id"), r.PathValue("user")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePendingJudges handles GET /events/{id}/observers/pending requests.
func (h *ObserversHandler) HandlePendingJudges(w http.ResponseWriter, r *http.Request) {
	entries, err := h.deps.PendingJudges(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]observerResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, observerResponse{
			UserID:  e.UserID,
			Address: e.Address,
			Role:    string(e.Role),
			Status:  string(e.Status),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleBroadcast handles POST /events/{id}/broadcast requests. Partial
// delivery failure is reported, not retried.
func (h *ObserversHandler) HandleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Subject) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: missing subject", ErrBadRequest))
		return
	}
	report, err := h.deps.Broadcast(r.Context(), r.PathValue("id"), req.Subject, req.Body)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, broadcastResponse{
		Attempted: report.Attempted,
		Delivered: report.Delivered,
		Failed:    report.Failed,
	})
}
