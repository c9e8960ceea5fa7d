// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	service "github.com/mmanav02/WeHack/internal/app"
	"github.com/mmanav02/WeHack/internal/domain/model"
)

// ScoreService defines the application operations scoring handlers call.
type ScoreService interface {
	SubmitJudgeScore(ctx context.Context, in service.ScoreInput) (model.JudgeScoreRecord, error)
	GetFinalScore(ctx context.Context, submissionID string) (float64, error)
	GetLeaderboard(ctx context.Context, eventID string) ([]service.LeaderboardEntry, error)
}

// ScoresHandler handles judge scoring and leaderboard requests.
type ScoresHandler struct {
	deps ScoreService
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps ScoreService) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

type scoreRequest struct {
	JudgeID    string  `json:"judge_id"`
	Innovation float64 `json:"innovation"`
	Impact     float64 `json:"impact"`
	Execution  float64 `json:"execution"`
}

func (s scoreRequest) validate() error {
	if strings.TrimSpace(s.JudgeID) == "" {
		return errors.New("missing judge_id")
	}
	return nil
}

type scoreResponse struct {
	ID           string  `json:"id"`
	JudgeID      string  `json:"judge_id"`
	SubmissionID string  `json:"submission_id"`
	Innovation   float64 `json:"innovation"`
	Impact       float64 `json:"impact"`
	Execution    float64 `json:"execution"`
}

type finalScoreResponse struct {
	SubmissionID string  `json:"submission_id"`
	Score        float64 `json:"score"`
}

type leaderboardRow struct {
	Rank         int     `json:"rank"`
	SubmissionID string  `json:"submission_id"`
	TeamID       string  `json:"team_id"`
	Title        string  `json:"title"`
	Score        float64 `json:"score"`
}

// HandleSubmitScore handles POST /submissions/{id}/scores requests.
func (h *ScoresHandler) HandleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	rec, err := h.deps.SubmitJudgeScore(r.Context(), service.ScoreInput{
		SubmissionID: r.PathValue("id"),
		JudgeID:      req.JudgeID,
		Innovation:   req.Innovation,
		Impact:       req.Impact,
		Execution:    req.Execution,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, scoreResponse{
		ID:           rec.ID,
		JudgeID:      rec.JudgeID,
		SubmissionID: rec.SubmissionID,
		Innovation:   rec.Innovation,
		Impact:       rec.Impact,
		Execution:    rec.Execution,
	})
}

// HandleGetFinalScore handles GET /submissions/{id}/score requests.
func (h *ScoresHandler) HandleGetFinalScore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	score, err := h.deps.GetFinalScore(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, finalScoreResponse{SubmissionID: id, Score: score})
}

// HandleGetLeaderboard handles GET /events/{id}/leaderboard requests. The
// board is empty until judging starts.
func (h *ScoresHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.deps.GetLeaderboard(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]leaderboardRow, 0, len(entries))
	for _, e := range entries {
		out = append(out, leaderboardRow{
			Rank:         e.Rank,
			SubmissionID: e.SubmissionID,
			TeamID:       e.TeamID,
			Title:        e.Title,
			Score:        e.Score,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
