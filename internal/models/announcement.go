package models

import "time"

// Announcement is one entry of the school feed.
type Announcement struct {
	ID             string     `json:"id"`
	Message        string     `json:"message"`
	StartDate      *time.Time `json:"start_date"`
	ExpirationDate time.Time  `json:"expiration_date"`
	CreatedBy      string     `json:"created_by"`
}

// IsCurrent reports whether a is visible at now: started (or no start date)
// and not yet past its expiration date. Both bounds are inclusive.
func (a Announcement) IsCurrent(now time.Time) bool {
	if a.StartDate != nil && a.StartDate.After(now) {
		return false
	}
	return !now.After(a.ExpirationDate)
}

// NewAnnouncement is the create payload. CreatedBy is never read from the client.
type NewAnnouncement struct {
	Message        string     `json:"message" validate:"required"`
	StartDate      *time.Time `json:"start_date"`
	ExpirationDate *time.Time `json:"expiration_date" validate:"required"`
}

// AnnouncementPatch is a sparse update: nil fields are left untouched.
// ClearStartDate removes the start date (an explicit JSON null).
type AnnouncementPatch struct {
	Message        *string
	StartDate      *time.Time
	ClearStartDate bool
	ExpirationDate *time.Time
}

// Empty reports whether the patch sets nothing.
func (p AnnouncementPatch) Empty() bool {
	return p.Message == nil && p.StartDate == nil && !p.ClearStartDate && p.ExpirationDate == nil
}
