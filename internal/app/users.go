package service

import (
	"context"

	"github.com/mmanav02/WeHack/internal/domain/model"
	"github.com/mmanav02/WeHack/pkg/logger"
)

// CreateUser stores a platform account. An empty ID gets a generated one.
func (s *Service) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	saved, err := s.users.Put(ctx, u)
	if err != nil {
		return model.User{}, err
	}

	if s.logger != nil {
		s.logger.Info(ctx, "user created",
			logger.String("user_id", saved.ID),
			logger.String("username", saved.Username),
		)
	}
	return saved, nil
}

// GetUser returns one user by id.
func (s *Service) GetUser(ctx context.Context, userID string) (model.User, error) {
	return s.users.Get(ctx, userID)
}
