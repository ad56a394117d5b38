package auth

import (
	"context"
	"errors"

	"github.com/crucial707/schoolboard/internal/models"
	"github.com/crucial707/schoolboard/internal/repo"
)

var (
	// ErrUnauthenticated means no identity token was supplied.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrInvalidUser means the token does not name a known account.
	ErrInvalidUser = errors.New("invalid user")
)

// UserFinder looks up a teacher account by username.
// It returns repo.ErrNotFound when there is no such account.
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// SessionResolver turns a request's identity token into the calling user.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// HeaderResolver treats the token as a plain username, as sent in the
// session header. It keeps no state and does one lookup per call.
type HeaderResolver struct {
	Users UserFinder
}

func NewHeaderResolver(users UserFinder) *HeaderResolver {
	return &HeaderResolver{Users: users}
}

func (r *HeaderResolver) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	user, err := r.Users.GetByUsername(ctx, token)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidUser
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
