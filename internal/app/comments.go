package service

import (
	"context"
	"strings"

	"github.com/mmanav02/WeHack/internal/domain/model"
	"github.com/mmanav02/WeHack/pkg/logger"
	"github.com/mmanav02/WeHack/pkg/metrics"
)

// CommentInput carries one new discussion entry. ParentID is empty for a
// top-level comment and names an existing comment for a reply.
type CommentInput struct {
	EventID  string
	AuthorID string
	ParentID string
	Content  string
}

// AddComment stores a discussion comment on an event. The author must be a
// known user and a reply's parent must belong to the same event.
func (s *Service) AddComment(ctx context.Context, in CommentInput) (model.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return model.Comment{}, model.ErrMissingContent
	}

	if _, err := s.events.Get(ctx, in.EventID); err != nil {
		return model.Comment{}, err
	}
	if _, err := s.users.Get(ctx, in.AuthorID); err != nil {
		return model.Comment{}, err
	}

	if in.ParentID != "" {
		parent, err := s.comments.Get(ctx, in.ParentID)
		if err != nil {
			return model.Comment{}, err
		}
		if parent.EventID != in.EventID {
			return model.Comment{}, ErrEventMismatch
		}
	}

	saved, err := s.comments.Put(ctx, model.Comment{
		EventID:   in.EventID,
		AuthorID:  in.AuthorID,
		ParentID:  in.ParentID,
		Content:   in.Content,
		CreatedAt: s.now(),
	})
	if err != nil {
		return model.Comment{}, err
	}

	metrics.RecordCommentAdded()
	if s.logger != nil {
		s.logger.Info(ctx, "comment added",
			logger.String("event_id", saved.EventID),
			logger.String("comment_id", saved.ID),
			logger.Bool("reply", saved.ParentID != ""),
		)
	}
	return saved, nil
}

// EventComments returns an event's discussion as a tree: top-level
// comments oldest first, each carrying its replies nested to any depth.
func (s *Service) EventComments(ctx context.Context, eventID string) ([]model.Comment, error) {
	if _, err := s.events.Get(ctx, eventID); err != nil {
		return nil, err
	}

	flat, err := s.comments.ByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return threadComments(flat), nil
}

// threadComments nests replies under their parents, keeping the store's
// ordering at every level. Replies whose parent is gone are dropped.
func threadComments(flat []model.Comment) []model.Comment {
	byParent := make(map[string][]model.Comment, len(flat))
	for _, c := range flat {
		byParent[c.ParentID] = append(byParent[c.ParentID], c)
	}

	var build func(parentID string) []model.Comment
	build = func(parentID string) []model.Comment {
		children := byParent[parentID]
		out := make([]model.Comment, 0, len(children))
		for _, c := range children {
			c.Replies = build(c.ID)
			out = append(out, c)
		}
		return out
	}
	return build("")
}
