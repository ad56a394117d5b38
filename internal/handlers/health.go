package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"
)

// Health always reports ok while the process is serving.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
}

// Ready pings the database and returns 503 when it is unreachable.
func Ready(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			JSONError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	}
}
