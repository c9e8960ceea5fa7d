package service

import (
	"context"
	"fmt"

	"github.com/mmanav02/WeHack/internal/domain/lifecycle"
	"github.com/mmanav02/WeHack/internal/domain/model"
	"github.com/mmanav02/WeHack/pkg/logger"
	"github.com/mmanav02/WeHack/pkg/metrics"
)

// CreateEvent stores a new event. Events always start in Draft regardless
// of the phase on the input, and unset enums fall back to safe defaults.
func (s *Service) CreateEvent(ctx context.Context, e model.Event) (model.Event, error) {
	e.Phase = model.Draft
	if e.ScoringMethod == "" {
		e.ScoringMethod = model.SimpleAverage
	}
	if e.MailMode == "" {
		e.MailMode = model.DisabledMode
	}

	saved, err := s.events.Put(ctx, e)
	if err != nil {
		return model.Event{}, err
	}

	if s.logger != nil {
		s.logger.Info(ctx, "event created",
			logger.String("event_id", saved.ID),
			logger.String("title", saved.Title),
		)
	}
	return saved, nil
}

// GetEvent returns one event by id.
func (s *Service) GetEvent(ctx context.Context, eventID string) (model.Event, error) {
	return s.events.Get(ctx, eventID)
}

// ListEvents returns all events.
func (s *Service) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.events.List(ctx)
}

// TransitionEvent advances an event's phase by one action. Transitions on
// the same event are serialized through a striped lock so concurrent
// requests cannot both observe the old phase; the fan-out announcement runs
// after the lock is released.
func (s *Service) TransitionEvent(ctx context.Context, eventID string, action lifecycle.Action) (model.Event, error) {
	mu := s.transitionLock(eventID)
	mu.Lock()

	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		mu.Unlock()
		return model.Event{}, err
	}

	next, err := lifecycle.Transition(event.Phase, action)
	if err != nil {
		mu.Unlock()
		metrics.RecordPhaseTransitionDenied()
		return model.Event{}, err
	}

	event.Phase = next
	saved, err := s.events.Put(ctx, event)
	mu.Unlock()
	if err != nil {
		return model.Event{}, err
	}

	metrics.RecordPhaseTransition(string(action))
	if s.logger != nil {
		s.logger.Info(ctx, "event phase advanced",
			logger.String("event_id", saved.ID),
			logger.String("phase", saved.Phase.String()),
		)
	}

	s.announcePhase(ctx, saved)
	return saved, nil
}

// announcePhase broadcasts the phase change to the event's approved
// observers. Delivery problems never fail the transition.
func (s *Service) announcePhase(ctx context.Context, event model.Event) {
	organizer, err := s.users.Get(ctx, event.OrganizerID)
	if err != nil {
		organizer = model.User{ID: event.OrganizerID}
	}

	subject := fmt.Sprintf("%s: phase update", event.Title)
	body := fmt.Sprintf("Hackathon %q is now %s!", event.Title, event.Phase)
	s.caster.Broadcast(ctx, event, organizer, subject, body)
}

// DeleteEvent tears an event down: judge scores, submissions, teams, their
// undo history, comments and the observer set all go with it.
func (s *Service) DeleteEvent(ctx context.Context, eventID string) error {
	if _, err := s.events.Get(ctx, eventID); err != nil {
		return err
	}

	subs, err := s.submissions.ByEvent(ctx, eventID)
	if err != nil {
		return err
	}
	for _, sub := range subs {
		if err := s.scores.DeleteBySubmission(ctx, sub.ID); err != nil {
			return err
		}
	}

	if err := s.submissions.DeleteByEvent(ctx, eventID); err != nil {
		return err
	}

	teams, err := s.teams.ByEvent(ctx, eventID)
	if err != nil {
		return err
	}
	for _, t := range teams {
		s.history.Clear(t.ID)
		if err := s.teams.Delete(ctx, t.ID); err != nil {
			return err
		}
	}

	if err := s.comments.DeleteByEvent(ctx, eventID); err != nil {
		return err
	}

	s.registry.Clear(eventID)

	if err := s.events.Delete(ctx, eventID); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info(ctx, "event deleted",
			logger.String("event_id", eventID),
			logger.Int("teams_removed", len(teams)),
		)
	}
	return nil
}
