package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crucial707/schoolboard/internal/models"
	"github.com/google/uuid"
)

// ========================
// REPOSITORY STRUCT
// ========================

type AnnouncementRepo struct {
	DB *sql.DB
}

func NewAnnouncementRepo(db *sql.DB) *AnnouncementRepo {
	return &AnnouncementRepo{DB: db}
}

const announcementColumns = `id, message, start_date, expiration_date, created_by`

// visibleAt is the current-window predicate; $1 is the reference time.
const visibleAt = `(start_date IS NULL OR start_date <= $1) AND expiration_date >= $1`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnnouncement(s rowScanner) (models.Announcement, error) {
	var (
		a     models.Announcement
		start sql.NullTime
	)
	if err := s.Scan(&a.ID, &a.Message, &start, &a.ExpirationDate, &a.CreatedBy); err != nil {
		return a, err
	}
	if start.Valid {
		t := start.Time.UTC()
		a.StartDate = &t
	}
	a.ExpirationDate = a.ExpirationDate.UTC()
	return a, nil
}

// ========================
// INSERT ANNOUNCEMENT
// ========================

// Insert stores a and returns its newly generated id. a.ID is ignored.
func (r *AnnouncementRepo) Insert(ctx context.Context, a models.Announcement) (string, error) {
	id := uuid.NewString()
	var start any
	if a.StartDate != nil {
		start = a.StartDate.UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO announcements (id, message, start_date, expiration_date, created_by)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, a.Message, start, a.ExpirationDate.UTC(), a.CreatedBy,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ========================
// GET ANNOUNCEMENT BY ID
// ========================

// GetByID returns the announcement regardless of its visibility window.
func (r *AnnouncementRepo) GetByID(ctx context.Context, id string) (models.Announcement, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+announcementColumns+` FROM announcements WHERE id = $1`,
		id,
	)
	a, err := scanAnnouncement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrNotFound
	}
	return a, err
}

// ========================
// LIST VISIBLE ANNOUNCEMENTS
// ========================

// ListVisible returns announcements whose window contains at.
func (r *AnnouncementRepo) ListVisible(ctx context.Context, at time.Time) ([]models.Announcement, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+announcementColumns+` FROM announcements WHERE `+visibleAt,
		at.UTC(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// CountVisible returns how many announcements are visible at at.
func (r *AnnouncementRepo) CountVisible(ctx context.Context, at time.Time) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM announcements WHERE `+visibleAt,
		at.UTC(),
	).Scan(&n)
	return n, err
}

// ========================
// UPDATE ANNOUNCEMENT BY ID
// ========================

// Update sets the fields present in p. It returns ErrNotFound when no row has id.
// An empty patch only checks that the row exists.
func (r *AnnouncementRepo) Update(ctx context.Context, id string, p models.AnnouncementPatch) error {
	if p.Empty() {
		var exists bool
		err := r.DB.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM announcements WHERE id = $1)`, id,
		).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return nil
	}

	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Message != nil {
		set("message", *p.Message)
	}
	switch {
	case p.StartDate != nil:
		set("start_date", p.StartDate.UTC())
	case p.ClearStartDate:
		set("start_date", nil)
	}
	if p.ExpirationDate != nil {
		set("expiration_date", p.ExpirationDate.UTC())
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE announcements SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// ========================
// DELETE ANNOUNCEMENT BY ID
// ========================

func (r *AnnouncementRepo) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
