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

// TeamService defines the application operations team handlers call.
type TeamService interface {
	CreateTeam(ctx context.Context, eventID, name, creatorID string) (model.Team, error)
	JoinTeam(ctx context.Context, teamID, userID string) (model.Team, error)
	ListTeams(ctx context.Context, eventID string) ([]model.Team, error)
}

// TeamsHandler handles team requests.
type TeamsHandler struct {
	deps TeamService
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamService) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

type teamRequest struct {
	Name      string `json:"name"`
	CreatorID string `json:"creator_id"`
}

func (t teamRequest) validate() error {
	switch {
	case strings.TrimSpace(t.Name) == "":
		return errors.New("missing name")
	case strings.TrimSpace(t.CreatorID) == "":
		return errors.New("missing creator_id")
	}
	return nil
}

type joinRequest struct {
	UserID string `json:"user_id"`
}

// teamResponse is the read shape for a single team.
type teamResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	EventID      string   `json:"event_id"`
	MemberIDs    []string `json:"member_ids"`
	SubmissionID string   `json:"submission_id,omitempty"`
}

func toTeamResponse(t model.Team) teamResponse {
	return teamResponse{
		ID:           t.ID,
		Name:         t.Name,
		EventID:      t.EventID,
		MemberIDs:    t.MemberIDs,
		SubmissionID: t.SubmissionID,
	}
}

// HandleCreateTeam handles POST /events/{id}/teams requests.
func (h *TeamsHandler) HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	team, err := h.deps.CreateTeam(r.Context(), r.PathValue("id"), req.Name, req.CreatorID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTeamResponse(team))
}

// HandleJoinTeam handles POST /teams/{id}/join requests.
func (h *TeamsHandler) HandleJoinTeam(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: missing user_id", ErrBadRequest))
		return
	}
	team, err := h.deps.JoinTeam(r.Context(), r.PathValue("id"), req.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTeamResponse(team))
}

// HandleListTeams handles GET /events/{id}/teams requests.
func (h *TeamsHandler) HandleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.deps.ListTeams(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]teamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, toTeamResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}
