package service

import (
	"context"
	"fmt"

	"github.com/mmanav02/WeHack/internal/adapters/mq/queue"
	repository "github.com/mmanav02/WeHack/internal/adapters/repository"
	"github.com/mmanav02/WeHack/internal/domain/model"
	"github.com/mmanav02/WeHack/internal/notify"
	"github.com/mmanav02/WeHack/pkg/logger"
	"github.com/mmanav02/WeHack/pkg/metrics"
)

// RegisterObserver adds a recipient to an event's observer set. Judges
// start out Pending and only join broadcasts once approved; other roles
// register as given.
func (s *Service) RegisterObserver(ctx context.Context, eventID string, entry model.ObserverEntry) error {
	if _, err := s.events.Get(ctx, eventID); err != nil {
		return err
	}

	if entry.Role == model.RoleJudge && entry.Status == "" {
		entry.Status = model.Pending
	}
	s.registry.Register(eventID, entry)
	return nil
}

// ApproveJudge flips a pending judge to Approved and tells them so.
func (s *Service) ApproveJudge(ctx context.Context, eventID, userID string) error {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return err
	}

	entry, ok := s.registry.Find(eventID, userID)
	if !ok {
		return fmt.Errorf("%w: observer %s", repository.ErrNotFound, userID)
	}

	entry.Status = model.Approved
	s.registry.Register(eventID, entry)
	metrics.RecordObserverApproved()

	organizer, err := s.users.Get(ctx, event.OrganizerID)
	if err == nil && entry.Address != "" {
		subject := fmt.Sprintf("Judge request approved for %s", event.Title)
		body := fmt.Sprintf("You are now an approved judge for %q.", event.Title)
		if s.outbox != nil {
			ok := s.outbox.Enqueue(ctx, queue.Message{
				Event:     event,
				Organizer: organizer,
				To:        entry.Address,
				Subject:   subject,
				Body:      body,
			})
			if !ok && s.logger != nil {
				s.logger.Warn(ctx, "judge approval notification dropped",
					logger.String("event_id", eventID),
					logger.String("to", entry.Address),
				)
			}
			return nil
		}
		channel := s.factory.Compose(event, organizer)
		if err := channel.Deliver(ctx, organizer.Email, entry.Address, subject, body); err != nil && s.logger != nil {
			s.logger.Warn(ctx, "judge approval notification failed",
				logger.String("event_id", eventID),
				logger.String("to", entry.Address),
				logger.Error(err),
			)
		}
	}
	return nil
}

// PendingJudges lists judges still waiting for approval on an event.
func (s *Service) PendingJudges(ctx context.Context, eventID string) ([]model.ObserverEntry, error) {
	if _, err := s.events.Get(ctx, eventID); err != nil {
		return nil, err
	}

	var out []model.ObserverEntry
	for _, e := range s.registry.ByStatus(eventID, model.Pending) {
		if e.Role == model.RoleJudge {
			out = append(out, e)
		}
	}
	return out, nil
}

// Broadcast fans a message out to every approved observer of an event and
// reports partial success.
func (s *Service) Broadcast(ctx context.Context, eventID, subject, body string) (notify.Report, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return notify.Report{}, err
	}

	organizer, err := s.users.Get(ctx, event.OrganizerID)
	if err != nil {
		organizer = model.User{ID: event.OrganizerID}
	}

	return s.caster.Broadcast(ctx, event, organizer, subject, body), nil
}
