package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hijabstore/internal/auth"
	apperrors "hijabstore/internal/errors"
	"hijabstore/internal/logger"
	"hijabstore/internal/metrics"
	"hijabstore/internal/model"
	"hijabstore/internal/repository"
)

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, email, password, role string) (*model.RegisteredUser, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   auth.PasswordHasher
	newKey   func() (string, error)
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, hasher auth.PasswordHasher) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		newKey:   auth.GenerateAPIKey,
	}
}

// Register creates a user after checking the email is free. The check and the
// insert are separate round trips; two concurrent registrations can both pass.
func (s *authService) Register(ctx context.Context, email, password, role string) (*model.RegisteredUser, error) {
	if email == "" || password == "" {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, apperrors.ErrMissingCredentials
	}
	if role == "" {
		role = model.RoleUser
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, apperrors.ErrInvalidRole
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, apperrors.Store(err)
	}
	if exists {
		metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		return nil, apperrors.ErrEmailTaken
	}

	apiKey, err := s.newKey()
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	stored, err := s.hasher.Hash(password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	user := &model.User{
		Email:    email,
		Password: stored,
		Role:     role,
		APIKey:   apiKey,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, apperrors.Store(err)
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	log := logger.Get()
	log.Info().Str("email", email).Str("role", role).Str("api_key", apiKey).Msg("user registered")

	return &model.RegisteredUser{Email: email, Role: role, APIKey: apiKey}, nil
}

// Login returns the first stored row whose email and password match. Wrong
// email and wrong password are reported the same way.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.findByCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	log := logger.Get()
	log.Info().Str("email", email).Msg("login succeeded")
	return user, nil
}

func (s *authService) findByCredentials(ctx context.Context, email, password string) (*model.User, error) {
	if s.hasher.Plain() {
		user, err := s.userRepo.FindByCredentials(ctx, email, password)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrInvalidCredentials
			}
			return nil, apperrors.Store(err)
		}
		return user, nil
	}

	candidates, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	for i := range candidates {
		if s.hasher.Verify(candidates[i].Password, password) {
			return &candidates[i], nil
		}
	}
	return nil, apperrors.ErrInvalidCredentials
}
