package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/schoolboard/internal/service"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON sends v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeServiceError maps a service error to its status and message.
// notFound is the message used for service.ErrNotFound.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		JSONError(w, "Not authenticated", http.StatusUnauthorized)
	case errors.Is(err, service.ErrInvalidUser):
		JSONError(w, "Invalid user", http.StatusUnauthorized)
	case errors.Is(err, service.ErrInvalidCredentials):
		JSONError(w, "Invalid username or password", http.StatusUnauthorized)
	case errors.Is(err, service.ErrValidation):
		JSONError(w, "Message and expiration date required.", http.StatusBadRequest)
	case errors.Is(err, service.ErrNotFound):
		JSONError(w, notFound, http.StatusNotFound)
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}
