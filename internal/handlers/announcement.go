package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/crucial707/schoolboard/internal/models"
	"github.com/crucial707/schoolboard/internal/service"
	"github.com/go-chi/chi/v5"
)

const msgAnnouncementNotFound = "Announcement not found."

// AnnouncementHandler serves /announcements. Writes read the caller's
// username from SessionHeader.
type AnnouncementHandler struct {
	Service       *service.AnnouncementService
	SessionHeader string
}

func (h *AnnouncementHandler) token(r *http.Request) string {
	header := h.SessionHeader
	if header == "" {
		header = "username"
	}
	return r.Header.Get(header)
}

//
// ==========================
// List Announcements
// ==========================
//

func (h *AnnouncementHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListCurrent(r.Context())
	if err != nil {
		writeServiceError(w, r, err, msgAnnouncementNotFound)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

//
// ==========================
// Create Announcement
// ==========================
//

func (h *AnnouncementHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	// created_by is not read; the server sets it from the session.
	var input struct {
		Message        string  `json:"message"`
		StartDate      *string `json:"start_date"`
		ExpirationDate *string `json:"expiration_date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	start, err := optionalTimestamp(input.StartDate)
	if err != nil {
		JSONError(w, "invalid start_date", http.StatusBadRequest)
		return
	}
	exp, err := optionalTimestamp(input.ExpirationDate)
	if err != nil {
		JSONError(w, "invalid expiration_date", http.StatusBadRequest)
		return
	}

	id, err := h.Service.Create(r.Context(), h.token(r), models.NewAnnouncement{
		Message:        input.Message,
		StartDate:      start,
		ExpirationDate: exp,
	})
	if err != nil {
		writeServiceError(w, r, err, msgAnnouncementNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

//
// ==========================
// Update Announcement
// ==========================
//

func (h *AnnouncementHandler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	patch, field, err := decodePatch(raw)
	if err != nil {
		JSONError(w, "invalid "+field, http.StatusBadRequest)
		return
	}

	if err := h.Service.Update(r.Context(), h.token(r), id, patch); err != nil {
		writeServiceError(w, r, err, msgAnnouncementNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

//
// ==========================
// Delete Announcement
// ==========================
//

func (h *AnnouncementHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(r.Context(), h.token(r), id); err != nil {
		writeServiceError(w, r, err, msgAnnouncementNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// decodePatch turns a partial JSON object into a sparse patch. Unknown
// fields, id and created_by are ignored. A null start_date clears it; a null
// message or expiration_date is left unchanged. On error it names the field.
func decodePatch(raw map[string]json.RawMessage) (models.AnnouncementPatch, string, error) {
	var p models.AnnouncementPatch

	if v, ok := raw["message"]; ok && !isNull(v) {
		var msg string
		if err := json.Unmarshal(v, &msg); err != nil {
			return p, "message", err
		}
		p.Message = &msg
	}

	if v, ok := raw["start_date"]; ok {
		if isNull(v) {
			p.ClearStartDate = true
		} else {
			t, err := rawTimestamp(v)
			if err != nil {
				return p, "start_date", err
			}
			if t == nil {
				p.ClearStartDate = true
			} else {
				p.StartDate = t
			}
		}
	}

	if v, ok := raw["expiration_date"]; ok && !isNull(v) {
		t, err := rawTimestamp(v)
		if err != nil {
			return p, "expiration_date", err
		}
		p.ExpirationDate = t
	}

	return p, "", nil
}

func isNull(v json.RawMessage) bool {
	return string(v) == "null"
}

func rawTimestamp(v json.RawMessage) (*time.Time, error) {
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil, err
	}
	return optionalTimestamp(&s)
}
