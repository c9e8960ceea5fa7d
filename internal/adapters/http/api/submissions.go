// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	service "github.com/mmanav02/WeHack/internal/app"
	"github.com/mmanav02/WeHack/internal/domain/model"
)

// SubmissionService defines the application operations submission
// handlers call.
type SubmissionService interface {
	CreateSubmission(ctx context.Context, in service.SubmissionInput) (model.Submission, error)
	EditSubmission(ctx context.Context, in service.EditInput) (model.Submission, error)
	UndoSubmission(ctx context.Context, teamID, submissionID, eventID string) (model.Submission, error)
	SetPrimarySubmission(ctx context.Context, submissionID, userID string) (model.Submission, error)
	GetSubmission(ctx context.Context, submissionID string) (model.Submission, error)
}

// SubmissionsHandler handles submission requests.
type SubmissionsHandler struct {
	deps SubmissionService
}

// NewSubmissionsHandler creates a new submissions handler.
func NewSubmissionsHandler(deps SubmissionService) *SubmissionsHandler {
	return &SubmissionsHandler{deps: deps}
}

// submissionRequest mirrors the wire schema for creating and editing a
// submission. File carries the optional attachment body as base64.
type submissionRequest struct {
	TeamID      string `json:"team_id"`
	SubmitterID string `json:"submitter_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ProjectURL  string `json:"project_url"`
	File        []byte `json:"file,omitempty"`
	FileName    string `json:"file_name,omitempty"`
}

func (s submissionRequest) validate() error {
	switch {
	case strings.TrimSpace(s.TeamID) == "":
		return errors.New("missing team_id")
	case strings.TrimSpace(s.SubmitterID) == "":
		return errors.New("missing submitter_id")
	}
	// Title and description rules belong to the validation chain so that
	// failures count toward its metrics.
	return nil
}

type editRequest struct {
	EventID     string `json:"event_id"`
	SubmitterID string `json:"submitter_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ProjectURL  string `json:"project_url"`
	File        []byte `json:"file,omitempty"`
	FileName    string `json:"file_name,omitempty"`
}

type undoRequest struct {
	TeamID  string `json:"team_id"`
	EventID string `json:"event_id"`
}

type primaryRequest struct {
	UserID string `json:"user_id"`
}

// submissionResponse is the read shape for a single submission.
type submissionResponse struct {
	ID          string `json:"id"`
	TeamID      string `json:"team_id"`
	EventID     string `json:"event_id"`
	SubmitterID string `json:"submitter_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ProjectURL  string `json:"project_url,omitempty"`
	FilePointer string `json:"file_pointer,omitempty"`
	Primary     bool   `json:"primary"`
	SubmittedAt string `json:"submitted_at,omitempty"`
}

func toSubmissionResponse(s model.Submission) submissionResponse {
	out := submissionResponse{
		ID:          s.ID,
		TeamID:      s.TeamID,
		EventID:     s.EventID,
		SubmitterID: s.SubmitterID,
		Title:       s.Title,
		Description: s.Description,
		ProjectURL:  s.ProjectURL,
		FilePointer: s.FilePointer,
		Primary:     s.Primary,
	}
	if !s.SubmittedAt.IsZero() {
		out.SubmittedAt = s.SubmittedAt.Format(time.RFC3339)
	}
	return out
}

// HandleCreateSubmission handles POST /events/{id}/submissions requests.
func (h *SubmissionsHandler) HandleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	saved, err := h.deps.CreateSubmission(r.Context(), service.SubmissionInput{
		EventID:     r.PathValue("id"),
		TeamID:      req.TeamID,
		SubmitterID: req.SubmitterID,
		Title:       req.Title,
		Description: req.Description,
		ProjectURL:  req.ProjectURL,
		File:        req.File,
		FileName:    req.FileName,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSubmissionResponse(saved))
}

// HandleGetSubmission handles GET /submissions/{id} requests.
func (h *SubmissionsHandler) HandleGetSubmission(w http.ResponseWriter, r *http.Request) {
	sub, err := h.deps.GetSubmission(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubmissionResponse(sub))
}

// HandleEditSubmission handles PUT /submissions/{id} requests. The body is
// a full replacement of the mutable content fields.
func (h *SubmissionsHandler) HandleEditSubmission(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.SubmitterID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: missing submitter_id", ErrBadRequest))
		return
	}
	saved, err := h.deps.EditSubmission(r.Context(), service.EditInput{
		SubmissionID: r.PathValue("id"),
		EventID:      req.EventID,
		SubmitterID:  req.SubmitterID,
		Title:        req.Title,
		Description:  req.Description,
		ProjectURL:   req.ProjectURL,
		File:         req.File,
		FileName:     req.FileName,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubmissionResponse(saved))
}

// HandleUndoSubmission handles POST /submissions/{id}/undo requests.
func (h *SubmissionsHandler) HandleUndoSubmission(w http.ResponseWriter, r *http.Request) {
	var req undoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.TeamID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: missing team_id", ErrBadRequest))
		return
	}
	restored, err := h.deps.UndoSubmission(r.Context(), req.TeamID, r.PathValue("id"), req.EventID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubmissionResponse(restored))
}

// HandleSetPrimary handles POST /submissions/{id}/primary requests.
func (h *SubmissionsHandler) HandleSetPrimary(w http.ResponseWriter, r *http.Request) {
	var req primaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: missing user_id", ErrBadRequest))
		return
	}
	sub, err := h.deps.SetPrimarySubmission(r.Context(), r.PathValue("id"), req.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubmissionResponse(sub))
}
