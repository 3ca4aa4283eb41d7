package service

import (
	"context"

	"hijabstore/internal/auth"
	apperrors "hijabstore/internal/errors"
	"hijabstore/internal/logger"
	"hijabstore/internal/metrics"
	"hijabstore/internal/model"
	"hijabstore/internal/repository"
)

// UserService exposes the admin user-management operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.UserSummary, error)
	DeleteUser(ctx context.Context, id uint) error
	UpdateEmail(ctx context.Context, id uint, email string) error
}

type userService struct {
	repo repository.UserRepository
	keys auth.KeyStoreInterface
}

// NewUserService builds a UserService. keys may be nil when the server-side
// key check is off.
func NewUserService(repo repository.UserRepository, keys auth.KeyStoreInterface) UserService {
	return &userService{repo: repo, keys: keys}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.UserSummary, error) {
	users, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return users, nil
}

// DeleteUser removes the user; a missing id is ErrUserNotFound.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		metrics.AdminActionsTotal.WithLabelValues("delete", "error").Inc()
		return apperrors.Store(err)
	}
	if affected == 0 {
		metrics.AdminActionsTotal.WithLabelValues("delete", "not_found").Inc()
		return apperrors.ErrUserNotFound
	}

	s.forget(ctx, id)
	metrics.AdminActionsTotal.WithLabelValues("delete", "ok").Inc()
	log := logger.Get()
	log.Info().Uint("user_id", id).Msg("user deleted")
	return nil
}

// UpdateEmail overwrites the email. No uniqueness check is made.
func (s *userService) UpdateEmail(ctx context.Context, id uint, email string) error {
	if email == "" {
		return apperrors.ErrMissingEmail
	}
	if err := s.repo.UpdateEmail(ctx, id, email); err != nil {
		metrics.AdminActionsTotal.WithLabelValues("edit", "error").Inc()
		return apperrors.Store(err)
	}

	s.forget(ctx, id)
	metrics.AdminActionsTotal.WithLabelValues("edit", "ok").Inc()
	log := logger.Get()
	log.Info().Uint("user_id", id).Str("email", email).Msg("user email updated")
	return nil
}

func (s *userService) forget(ctx context.Context, id uint) {
	if s.keys == nil {
		return
	}
	_ = s.keys.ForgetUser(ctx, id)
}
