package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/schoolboard/internal/models"
)

// AuditRepo persists audit log entries for announcement writes.
type AuditRepo struct {
	db *sql.DB
}

// NewAuditRepo returns a new AuditRepo.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Log records an audit entry. action is one of models.AuditCreate, AuditUpdate, AuditDelete.
func (r *AuditRepo) Log(ctx context.Context, username, action, announcementID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (username, action, announcement_id) VALUES ($1, $2, $3)`,
		username, action, announcementID,
	)
	return err
}

// List returns recent audit entries, newest first.
func (r *AuditRepo) List(ctx context.Context, limit, offset int) ([]models.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, action, announcement_id, created_at FROM audit_log ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.Username, &e.Action, &e.AnnouncementID, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
