package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/schoolboard/internal/auth"
	"github.com/crucial707/schoolboard/internal/models"
)

type key string

const UserKey key = "user"

// Session resolves the caller from the given request header and stores the
// user in the request context. Requests that do not resolve get 401.
func Session(resolver auth.SessionResolver, header string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.Resolve(r.Context(), r.Header.Get(header))
			if err != nil {
				status, msg := http.StatusUnauthorized, "Invalid user"
				switch {
				case errors.Is(err, auth.ErrUnauthenticated):
					msg = "Not authenticated"
				case errors.Is(err, auth.ErrInvalidUser):
				default:
					slog.Error("session resolve failed", "path", r.URL.Path, "error", err)
					status, msg = http.StatusInternalServerError, "internal server error"
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				json.NewEncoder(w).Encode(map[string]string{"error": msg})
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the user stored by Session.
func GetUser(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(UserKey).(*models.User)
	return u, ok
}
