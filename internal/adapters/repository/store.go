// Package repository defines entity store interfaces and their in-memory
// implementations.
//
// Persistence proper lives behind these seams; the in-memory stores shard
// entities across RWMutex-guarded maps so different keys do not contend.
// Missing ids yield errors wrapping ErrNotFound.
package repository

import (
	"context"

	"github.com/mmanav02/WeHack/internal/domain/model"
)

// EventStore provides CRUD access to events.
type EventStore interface {
	// Get returns the event by id, or ErrNotFound.
	Get(ctx context.Context, id string) (model.Event, error)

	// Put inserts or replaces an event, assigning an id when absent.
	Put(ctx context.Context, e model.Event) (model.Event, error)

	// Delete removes an event by id.
	Delete(ctx context.Context, id string) error

	// List returns all events.
	List(ctx context.Context) ([]model.Event, error)
}

// UserStore provides CRUD access to users.
type UserStore interface {
	Get(ctx context.Context, id string) (model.User, error)
	Put(ctx context.Context, u model.User) (model.User, error)
}

// TeamStore provides CRUD and query-by-parent access to teams.
type TeamStore interface {
	Get(ctx context.Context, id string) (model.Team, error)
	Put(ctx context.Context, t model.Team) (model.Team, error)
	Delete(ctx context.Context, id string) error

	// ByEvent returns all teams registered for an event.
	ByEvent(ctx context.Context, eventID string) ([]model.Team, error)

	// ByMember returns the team a user belongs to within an event,
	// or ErrNotFound. A user belongs to at most one team per event.
	ByMember(ctx context.Context, eventID, userID string) (model.Team, error)
}

// SubmissionStore provides CRUD and query-by-parent access to submissions.
type SubmissionStore interface {
	Get(ctx context.Context, id string) (model.Submission, error)
	Put(ctx context.Context, s model.Submission) (model.Submission, error)
	Delete(ctx context.Context, id string) error

	// ByEvent returns all submissions for an event.
	ByEvent(ctx context.Context, eventID string) ([]model.Submission, error)

	// ByTeam returns all submissions for a team.
	ByTeam(ctx context.Context, teamID string) ([]model.Submission, error)

	// DeleteByEvent removes every submission for an event. Used on teardown.
	DeleteByEvent(ctx context.Context, eventID string) error
}

// ScoreStore appends and queries judge score records.
type ScoreStore interface {
	// Append stores a new record, assigning an id when absent. Records
	// accumulate; the store never dedupes by judge.
	Append(ctx context.Context, r model.JudgeScoreRecord) (model.JudgeScoreRecord, error)

	// BySubmission returns all records for a submission.
	BySubmission(ctx context.Context, submissionID string) ([]model.JudgeScoreRecord, error)

	// DeleteBySubmission removes every record for a submission. Used on
	// event teardown.
	DeleteBySubmission(ctx context.Context, submissionID string) error
}

// CommentStore provides CRUD and query-by-parent access to discussion
// comments.
type CommentStore interface {
	Get(ctx context.Context, id string) (model.Comment, error)
	Put(ctx context.Context, c model.Comment) (model.Comment, error)

	// ByEvent returns all comments for an event, replies included,
	// oldest first.
	ByEvent(ctx context.Context, eventID string) ([]model.Comment, error)

	// DeleteByEvent removes every comment for an event. Used on teardown.
	DeleteByEvent(ctx context.Context, eventID string) error
}
