package service

import (
	"errors"

	"github.com/crucial707/schoolboard/internal/auth"
)

// Errors returned by the services. Each maps to exactly one HTTP status.
var (
	ErrUnauthenticated    = auth.ErrUnauthenticated
	ErrInvalidUser        = auth.ErrInvalidUser
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrValidation         = errors.New("message and expiration date required")
	ErrNotFound           = errors.New("not found")
)
