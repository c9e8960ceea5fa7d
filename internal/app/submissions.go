package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmanav02/WeHack/internal/adapters/mq/queue"
	"github.com/mmanav02/WeHack/internal/domain/guard"
	"github.com/mmanav02/WeHack/internal/domain/model"
	"github.com/mmanav02/WeHack/internal/domain/validate"
	"github.com/mmanav02/WeHack/pkg/logger"
	"github.com/mmanav02/WeHack/pkg/metrics"
)

// SubmissionInput carries everything needed to create a submission.
// File is the optional attachment body; FileName its original name.
type SubmissionInput struct {
	EventID     string
	TeamID      string
	SubmitterID string
	Title       string
	Description string
	ProjectURL  string
	File        []byte
	FileName    string
}

// EditInput carries a full replacement of a submission's mutable content.
// An empty File keeps the currently attached pointer.
type EditInput struct {
	SubmissionID string
	EventID      string
	SubmitterID  string
	Title        string
	Description  string
	ProjectURL   string
	File         []byte
	FileName     string
}

// GetSubmission returns one submission by id.
func (s *Service) GetSubmission(ctx context.Context, submissionID string) (model.Submission, error) {
	return s.submissions.Get(ctx, submissionID)
}

// CreateSubmission runs the full write path: guard, fluent build, optional
// attachment upload, persist, team pointer update, memento push and finally
// the organizer notification. Only the notification is allowed to fail
// without failing the write.
func (s *Service) CreateSubmission(ctx context.Context, in SubmissionInput) (model.Submission, error) {
	team, err := s.teams.Get(ctx, in.TeamID)
	if err != nil {
		return model.Submission{}, err
	}
	if team.EventID != in.EventID {
		return model.Submission{}, ErrEventMismatch
	}
	if !team.Has(in.SubmitterID) {
		return model.Submission{}, ErrNotTeamMember
	}

	event, err := s.events.Get(ctx, in.EventID)
	if err != nil {
		return model.Submission{}, err
	}

	if err := s.admit(in.SubmitterID, in.EventID, validate.Draft{
		Title:       in.Title,
		Description: in.Description,
		FileSize:    int64(len(in.File)),
	}); err != nil {
		return model.Submission{}, err
	}

	builder := model.NewSubmissionBuilder().
		Team(&team).
		Title(in.Title).
		Description(in.Description).
		ProjectURL(in.ProjectURL).
		Submitter(in.SubmitterID).
		SubmittedAt(s.now())

	if len(in.File) > 0 {
		ptr, err := s.blobs.Store(ctx, in.File, in.FileName)
		if err != nil {
			s.guard.Reset(in.SubmitterID, in.EventID)
			return model.Submission{}, err
		}
		builder.FilePointer(string(ptr))
	}

	sub, err := builder.Build()
	if err != nil {
		s.guard.Reset(in.SubmitterID, in.EventID)
		return model.Submission{}, err
	}

	saved, err := s.submissions.Put(ctx, sub)
	if err != nil {
		s.guard.Reset(in.SubmitterID, in.EventID)
		return model.Submission{}, err
	}

	team.SubmissionID = saved.ID
	if _, err := s.teams.Put(ctx, team); err != nil {
		s.guard.Reset(in.SubmitterID, in.EventID)
		return model.Submission{}, err
	}

	s.history.Push(team.ID, saved.Memento(s.now()))
	metrics.RecordSubmissionCreated()

	s.notifyOrganizer(ctx, event,
		fmt.Sprintf("New submission for %s", event.Title),
		fmt.Sprintf("Team %q submitted %q.", team.Name, saved.Title),
	)
	return saved, nil
}

// EditSubmission replaces a submission's mutable content after ownership
// and event-consistency checks. The resulting state is snapshotted onto the
// team's history stack.
func (s *Service) EditSubmission(ctx context.Context, in EditInput) (model.Submission, error) {
	sub, err := s.submissions.Get(ctx, in.SubmissionID)
	if err != nil {
		return model.Submission{}, err
	}
	if sub.EventID != in.EventID {
		return model.Submission{}, ErrEventMismatch
	}

	team, err := s.teams.Get(ctx, sub.TeamID)
	if err != nil {
		return model.Submission{}, err
	}
	if !team.Has(in.SubmitterID) {
		return model.Submission{}, ErrNotTeamMember
	}

	if err := s.admit(in.SubmitterID, in.EventID, validate.Draft{
		Title:       in.Title,
		Description: in.Description,
		FileSize:    int64(len(in.File)),
	}); err != nil {
		return model.Submission{}, err
	}

	sub.Title = in.Title
	sub.Description = in.Description
	sub.ProjectURL = in.ProjectURL
	if len(in.File) > 0 {
		ptr, err := s.blobs.Store(ctx, in.File, in.FileName)
		if err != nil {
			s.guard.Reset(in.SubmitterID, in.EventID)
			return model.Submission{}, err
		}
		sub.FilePointer = string(ptr)
	}

	saved, err := s.submissions.Put(ctx, sub)
	if err != nil {
		s.guard.Reset(in.SubmitterID, in.EventID)
		return model.Submission{}, err
	}

	team.SubmissionID = saved.ID
	if _, err := s.teams.Put(ctx, team); err != nil {
		s.guard.Reset(in.SubmitterID, in.EventID)
		return model.Submission{}, err
	}

	s.history.Push(team.ID, saved.Memento(s.now()))
	metrics.RecordSubmissionEdited()
	return saved, nil
}

// UndoSubmission pops the team's most recent memento and restores its
// content onto the live submission. It consumes history and pushes nothing,
// so repeated undo walks backward until the stack is exhausted.
func (s *Service) UndoSubmission(ctx context.Context, teamID, submissionID, eventID string) (model.Submission, error) {
	sub, err := s.submissions.Get(ctx, submissionID)
	if err != nil {
		return model.Submission{}, err
	}
	if sub.TeamID != teamID || sub.EventID != eventID {
		return model.Submission{}, ErrEventMismatch
	}

	memento, err := s.history.Pop(teamID)
	if err != nil {
		return model.Submission{}, err
	}

	sub.Restore(memento)
	saved, err := s.submissions.Put(ctx, sub)
	if err != nil {
		return model.Submission{}, err
	}

	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return model.Submission{}, err
	}
	team.SubmissionID = saved.ID
	if _, err := s.teams.Put(ctx, team); err != nil {
		return model.Submission{}, err
	}

	metrics.RecordSubmissionUndone()
	if s.logger != nil {
		s.logger.Info(ctx, "submission rolled back",
			logger.String("submission_id", saved.ID),
			logger.String("team_id", teamID),
			logger.Int("history_left", s.history.Depth(teamID)),
		)
	}
	return saved, nil
}

// SetPrimarySubmission marks one submission as the team's primary entry.
// The previous primary for the (team, event) pair is cleared in the same
// operation. Locked once judging starts.
func (s *Service) SetPrimarySubmission(ctx context.Context, submissionID, userID string) (model.Submission, error) {
	sub, err := s.submissions.Get(ctx, submissionID)
	if err != nil {
		return model.Submission{}, err
	}

	team, err := s.teams.Get(ctx, sub.TeamID)
	if err != nil {
		return model.Submission{}, err
	}
	if !team.Has(userID) {
		return model.Submission{}, ErrNotTeamMember
	}

	event, err := s.events.Get(ctx, sub.EventID)
	if err != nil {
		return model.Submission{}, err
	}
	if event.Phase == model.Judging || event.Phase == model.Completed {
		return model.Submission{}, ErrPhaseLocked
	}

	siblings, err := s.submissions.ByTeam(ctx, team.ID)
	if err != nil {
		return model.Submission{}, err
	}
	for _, sibling := range siblings {
		if sibling.Primary && sibling.EventID == sub.EventID && sibling.ID != sub.ID {
			sibling.Primary = false
			if _, err := s.submissions.Put(ctx, sibling); err != nil {
				return model.Submission{}, err
			}
		}
	}

	sub.Primary = true
	return s.submissions.Put(ctx, sub)
}

// admit runs the guard and translates its failures into metrics.
func (s *Service) admit(submitterID, eventID string, d validate.Draft) error {
	err := s.guard.Admit(submitterID, eventID, d)
	if err == nil {
		return nil
	}
	if errors.Is(err, guard.ErrRateLimited) {
		metrics.RecordRateLimited()
		return err
	}
	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		metrics.RecordValidationFailure(verr.Check)
	}
	return err
}

// notifyOrganizer delivers a single message to the event's organizer over
// the event's channel chain. Failures are logged, never propagated.
func (s *Service) notifyOrganizer(ctx context.Context, event model.Event, subject, body string) {
	organizer, err := s.users.Get(ctx, event.OrganizerID)
	if err != nil || organizer.Email == "" {
		return
	}

	if s.outbox != nil {
		ok := s.outbox.Enqueue(ctx, queue.Message{
			Event:     event,
			Organizer: organizer,
			To:        organizer.Email,
			Subject:   subject,
			Body:      body,
		})
		if !ok && s.logger != nil {
			s.logger.Warn(ctx, "organizer notification dropped",
				logger.String("event_id", event.ID),
			)
		}
		return
	}

	channel := s.factory.Compose(event, organizer)
	if err := channel.Deliver(ctx, organizer.Email, organizer.Email, subject, body); err != nil {
		if s.logger != nil {
			s.logger.Warn(ctx, "organizer notification failed",
				logger.String("event_id", event.ID),
				logger.Error(err),
			)
		}
	}
}
