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

// CommentService defines the application operations comment handlers call.
type CommentService interface {
	AddComment(ctx context.Context, in service.CommentInput) (model.Comment, error)
	EventComments(ctx context.Context, eventID string) ([]model.Comment, error)
}

// CommentsHandler handles event discussion requests.
type CommentsHandler struct {
	deps CommentService
}

// NewCommentsHandler creates a new comments handler.
func NewCommentsHandler(deps CommentService) *CommentsHandler {
	return &CommentsHandler{deps: deps}
}

type commentRequest struct {
	AuthorID string `json:"author_id"`
	Content  string `json:"content"`
	ParentID string `json:"parent_id,omitempty"`
}

func (c commentRequest) validate() error {
	if strings.TrimSpace(c.AuthorID) == "" {
		return errors.New("missing author_id")
	}
	return nil
}

type commentResponse struct {
	ID        string            `json:"id"`
	EventID   string            `json:"event_id"`
	AuthorID  string            `json:"author_id"`
	ParentID  string            `json:"parent_id,omitempty"`
	Content   string            `json:"content"`
	CreatedAt string            `json:"created_at"`
	Replies   []commentResponse `json:"replies"`
}

func toCommentResponse(c model.Comment) commentResponse {
	replies := make([]commentResponse, 0, len(c.Replies))
	for _, r := range c.Replies {
		replies = append(replies, toCommentResponse(r))
	}
	return commentResponse{
		ID:        c.ID,
		EventID:   c.EventID,
		AuthorID:  c.AuthorID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		Replies:   replies,
	}
}

// HandleAddComment handles POST /events/{id}/comments requests.
func (h *CommentsHandler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	saved, err := h.deps.AddComment(r.Context(), service.CommentInput{
		EventID:  r.PathValue("id"),
		AuthorID: req.AuthorID,
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentResponse(saved))
}

// HandleListComments handles GET /events/{id}/comments requests.
func (h *CommentsHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.deps.EventComments(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}
