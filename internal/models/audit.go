package models

import "time"

// Audit actions recorded for announcement writes.
const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
)

// AuditEntry represents one audit log row.
type AuditEntry struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	Action         string    `json:"action"`
	AnnouncementID string    `json:"announcement_id"`
	CreatedAt      time.Time `json:"created_at"`
}
