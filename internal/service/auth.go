package service

import (
	"context"
	"errors"

	"github.com/crucial707/schoolboard/internal/auth"
	"github.com/crucial707/schoolboard/internal/metrics"
	"github.com/crucial707/schoolboard/internal/models"
	"github.com/crucial707/schoolboard/internal/repo"
)

// AuthService implements teacher login and session checks.
type AuthService struct {
	Users    auth.UserFinder
	Verifier auth.Verifier
}

func NewAuthService(users auth.UserFinder, verifier auth.Verifier) *AuthService {
	return &AuthService{Users: users, Verifier: verifier}
}

// Login verifies the password and returns the public profile.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.Profile, error) {
	user, err := s.Users.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		metrics.IncLogin("rejected")
		return models.Profile{}, ErrInvalidCredentials
	}
	if err != nil {
		metrics.IncLogin("error")
		return models.Profile{}, err
	}
	if !s.Verifier.Verify(user.PasswordHash, password) {
		metrics.IncLogin("rejected")
		return models.Profile{}, ErrInvalidCredentials
	}
	metrics.IncLogin("ok")
	return user.Profile(), nil
}

// CheckSession reports the profile for username without checking any credential.
func (s *AuthService) CheckSession(ctx context.Context, username string) (models.Profile, error) {
	user, err := s.Users.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Profile{}, ErrNotFound
	}
	if err != nil {
		return models.Profile{}, err
	}
	return user.Profile(), nil
}
