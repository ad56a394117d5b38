package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/crucial707/schoolboard/internal/auth"
	"github.com/crucial707/schoolboard/internal/metrics"
	"github.com/crucial707/schoolboard/internal/models"
	"github.com/crucial707/schoolboard/internal/repo"
	"github.com/go-playground/validator/v10"
)

// AnnouncementStore is the persistence the announcement service needs.
// Update and Delete return repo.ErrNotFound when id matches nothing.
type AnnouncementStore interface {
	ListVisible(ctx context.Context, at time.Time) ([]models.Announcement, error)
	Insert(ctx context.Context, a models.Announcement) (string, error)
	Update(ctx context.Context, id string, p models.AnnouncementPatch) error
	Delete(ctx context.Context, id string) error
}

// AuditLogger records who changed which announcement.
type AuditLogger interface {
	Log(ctx context.Context, username, action, announcementID string) error
}

// AnnouncementService serves the feed and guards writes with the session resolver.
type AnnouncementService struct {
	Store    AnnouncementStore
	Sessions auth.SessionResolver
	// Audit is optional.
	Audit AuditLogger
	// Now defaults to time.Now.
	Now func() time.Time

	validate *validator.Validate
}

func NewAnnouncementService(store AnnouncementStore, sessions auth.SessionResolver, audit AuditLogger) *AnnouncementService {
	return &AnnouncementService{
		Store:    store,
		Sessions: sessions,
		Audit:    audit,
		Now:      time.Now,
		validate: validator.New(),
	}
}

func (s *AnnouncementService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// ListCurrent returns the announcements whose window contains the present
// moment. One clock reading is used for the whole call.
func (s *AnnouncementService) ListCurrent(ctx context.Context) ([]models.Announcement, error) {
	now := s.now()
	list, err := s.Store.ListVisible(ctx, now)
	if err != nil {
		return nil, err
	}
	current := make([]models.Announcement, 0, len(list))
	for _, a := range list {
		if a.IsCurrent(now) {
			current = append(current, a)
		}
	}
	return current, nil
}

// Create stores a new announcement authored by the caller and returns its id.
func (s *AnnouncementService) Create(ctx context.Context, token string, in models.NewAnnouncement) (string, error) {
	user, err := s.Sessions.Resolve(ctx, token)
	if err != nil {
		metrics.IncAnnouncementWrite(models.AuditCreate, "unauthorized")
		return "", err
	}

	if s.validate == nil {
		s.validate = validator.New()
	}
	if err := s.validate.Struct(in); err != nil {
		metrics.IncAnnouncementWrite(models.AuditCreate, "invalid")
		return "", ErrValidation
	}

	id, err := s.Store.Insert(ctx, models.Announcement{
		Message:        in.Message,
		StartDate:      in.StartDate,
		ExpirationDate: *in.ExpirationDate,
		CreatedBy:      user.Username,
	})
	if err != nil {
		metrics.IncAnnouncementWrite(models.AuditCreate, "error")
		return "", err
	}

	metrics.IncAnnouncementWrite(models.AuditCreate, "ok")
	s.audit(ctx, user.Username, models.AuditCreate, id)
	return id, nil
}

// Update merges p into the announcement with the given id. Any authenticated
// caller may update any announcement.
func (s *AnnouncementService) Update(ctx context.Context, token, id string, p models.AnnouncementPatch) error {
	user, err := s.Sessions.Resolve(ctx, token)
	if err != nil {
		metrics.IncAnnouncementWrite(models.AuditUpdate, "unauthorized")
		return err
	}

	if err := s.Store.Update(ctx, id, p); err != nil {
		return s.writeFailed(models.AuditUpdate, err)
	}

	metrics.IncAnnouncementWrite(models.AuditUpdate, "ok")
	s.audit(ctx, user.Username, models.AuditUpdate, id)
	return nil
}

// Delete removes the announcement with the given id.
func (s *AnnouncementService) Delete(ctx context.Context, token, id string) error {
	user, err := s.Sessions.Resolve(ctx, token)
	if err != nil {
		metrics.IncAnnouncementWrite(models.AuditDelete, "unauthorized")
		return err
	}

	if err := s.Store.Delete(ctx, id); err != nil {
		return s.writeFailed(models.AuditDelete, err)
	}

	metrics.IncAnnouncementWrite(models.AuditDelete, "ok")
	s.audit(ctx, user.Username, models.AuditDelete, id)
	return nil
}

func (s *AnnouncementService) writeFailed(op string, err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		metrics.IncAnnouncementWrite(op, "not_found")
		return ErrNotFound
	}
	metrics.IncAnnouncementWrite(op, "error")
	return err
}

// audit failures are logged only; the write itself already succeeded.
func (s *AnnouncementService) audit(ctx context.Context, username, action, id string) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.Log(ctx, username, action, id); err != nil {
		slog.Warn("audit log failed",
			"action", action,
			"announcement_id", id,
			"username", username,
			"error", err)
	}
}
