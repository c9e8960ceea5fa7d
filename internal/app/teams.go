package service

import (
	"context"
	"errors"

	repository "github.com/mmanav02/WeHack/internal/adapters/repository"
	"github.com/mmanav02/WeHack/internal/domain/model"
	"github.com/mmanav02/WeHack/pkg/logger"
)

// CreateTeam registers a team for an event with the creator as its first
// member. A user holds at most one team membership per event.
func (s *Service) CreateTeam(ctx context.Context, eventID, name, creatorID string) (model.Team, error) {
	if _, err := s.events.Get(ctx, eventID); err != nil {
		return model.Team{}, err
	}

	if _, err := s.teams.ByMember(ctx, eventID, creatorID); err == nil {
		return model.Team{}, ErrAlreadyInTeam
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.Team{}, err
	}

	team := model.Team{
		Name:      name,
		EventID:   eventID,
		MemberIDs: []string{creatorID},
	}
	saved, err := s.teams.Put(ctx, team)
	if err != nil {
		return model.Team{}, err
	}

	if s.logger != nil {
		s.logger.Info(ctx, "team created",
			logger.String("team_id", saved.ID),
			logger.String("event_id", eventID),
		)
	}
	return saved, nil
}

// JoinTeam adds a user to an existing team, keeping the one-team-per-event
// rule.
func (s *Service) JoinTeam(ctx context.Context, teamID, userID string) (model.Team, error) {
	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return model.Team{}, err
	}

	if team.Has(userID) {
		return team, nil
	}

	if _, err := s.teams.ByMember(ctx, team.EventID, userID); err == nil {
		return model.Team{}, ErrAlreadyInTeam
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.Team{}, err
	}

	team.MemberIDs = append(team.MemberIDs, userID)
	return s.teams.Put(ctx, team)
}

// ListTeams returns all teams registered for an event.
func (s *Service) ListTeams(ctx context.Context, eventID string) ([]model.Team, error) {
	return s.teams.ByEvent(ctx, eventID)
}
