package handlers

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/crucial707/schoolboard/internal/service"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Service *service.AuthService
}

// ==========================
// Login (username and password as query or form parameters; a JSON body is also accepted)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			JSONError(w, "invalid json", http.StatusBadRequest)
			return
		}
	}
	if input.Username == "" {
		input.Username = r.FormValue("username")
	}
	if input.Password == "" {
		input.Password = r.FormValue("password")
	}

	profile, err := h.Service.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		writeServiceError(w, r, err, "Teacher not found")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// ==========================
// Check Session (existence probe only; no credential is checked)
// ==========================
func (h *AuthHandler) CheckSession(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Service.CheckSession(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		writeServiceError(w, r, err, "Teacher not found")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
