package service

import (
	"context"
	"strconv"
	"time"

	"github.com/crucial707/schoolboard/internal/models"
	"github.com/crucial707/schoolboard/internal/repo"
)

// memStore is an in-memory AnnouncementStore. ListVisible returns every
// stored document so tests exercise the service-side window check.
type memStore struct {
	docs   map[string]models.Announcement
	order  []string
	nextID int
	calls  int
}

func newMemStore() *memStore {
	return &memStore{docs: map[string]models.Announcement{}}
}

func (m *memStore) ListVisible(_ context.Context, _ time.Time) ([]models.Announcement, error) {
	m.calls++
	out := make([]models.Announcement, 0, len(m.order))
	for _, id := range m.order {
		if a, ok := m.docs[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) Insert(_ context.Context, a models.Announcement) (string, error) {
	m.calls++
	m.nextID++
	a.ID = "ann-" + strconv.Itoa(m.nextID)
	m.docs[a.ID] = a
	m.order = append(m.order, a.ID)
	return a.ID, nil
}

func (m *memStore) Update(_ context.Context, id string, p models.AnnouncementPatch) error {
	m.calls++
	a, ok := m.docs[id]
	if !ok {
		return repo.ErrNotFound
	}
	if p.Message != nil {
		a.Message = *p.Message
	}
	if p.StartDate != nil {
		a.StartDate = p.StartDate
	} else if p.ClearStartDate {
		a.StartDate = nil
	}
	if p.ExpirationDate != nil {
		a.ExpirationDate = *p.ExpirationDate
	}
	m.docs[id] = a
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.calls++
	if _, ok := m.docs[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

func (m *memStore) get(id string) (models.Announcement, bool) {
	a, ok := m.docs[id]
	return a, ok
}

type fakeUsers map[string]*models.User

func (f fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := f[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

type auditCall struct {
	username, action, id string
}

type fakeAudit struct {
	calls []auditCall
	err   error
}

func (f *fakeAudit) Log(_ context.Context, username, action, id string) error {
	f.calls = append(f.calls, auditCall{username, action, id})
	return f.err
}

func ptr[T any](v T) *T { return &v }
