package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crucial707/schoolboard/internal/auth"
	"github.com/crucial707/schoolboard/internal/models"
)

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newTestAnnouncementService(store *memStore, audit *fakeAudit) *AnnouncementService {
	users := fakeUsers{
		"alice": {Username: "alice", DisplayName: "Alice Adams", Role: "teacher"},
		"bob":   {Username: "bob", DisplayName: "Bob Brown", Role: "admin"},
	}
	svc := NewAnnouncementService(store, auth.NewHeaderResolver(users), nil)
	if audit != nil {
		svc.Audit = audit
	}
	svc.Now = func() time.Time { return testNow }
	return svc
}

func TestAnnouncementService_ListCurrent_Window(t *testing.T) {
	store := newMemStore()
	svc := newTestAnnouncementService(store, nil)
	ctx := context.Background()

	cases := []struct {
		name    string
		start   *time.Time
		exp     time.Time
		visible bool
	}{
		{"no start, future expiry", nil, testNow.Add(24 * time.Hour), true},
		{"started, future expiry", ptr(testNow.Add(-time.Hour)), testNow.Add(time.Hour), true},
		{"starts exactly now", ptr(testNow), testNow.Add(time.Hour), true},
		{"expires exactly now", nil, testNow, true},
		{"not started yet", ptr(testNow.Add(time.Minute)), testNow.Add(time.Hour), false},
		{"expired", nil, testNow.Add(-time.Second), false},
		{"started and expired", ptr(testNow.Add(-48 * time.Hour)), testNow.Add(-24 * time.Hour), false},
	}
	want := map[string]bool{}
	for _, c := range cases {
		id, _ := store.Insert(ctx, models.Announcement{Message: c.name, StartDate: c.start, ExpirationDate: c.exp, CreatedBy: "alice"})
		want[id] = c.visible
	}

	list, err := svc.ListCurrent(ctx)
	if err != nil {
		t.Fatalf("ListCurrent: %v", err)
	}
	got := map[string]bool{}
	for _, a := range list {
		got[a.ID] = true
	}
	for id, visible := range want {
		if got[id] != visible {
			a, _ := store.get(id)
			t.Errorf("%q: visible=%v, want %v", a.Message, got[id], visible)
		}
	}
}

func TestAnnouncementService_ListCurrent_SingleClockRead(t *testing.T) {
	store := newMemStore()
	svc := newTestAnnouncementService(store, nil)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		store.Insert(ctx, models.Announcement{Message: "m", ExpirationDate: testNow.Add(time.Duration(i) * time.Millisecond)})
	}

	reads := 0
	clock := testNow
	svc.Now = func() time.Time {
		reads++
		clock = clock.Add(time.Millisecond)
		return clock
	}

	list, err := svc.ListCurrent(ctx)
	if err != nil {
		t.Fatalf("ListCurrent: %v", err)
	}
	if reads != 1 {
		t.Errorf("expected one clock read per call, got %d", reads)
	}
	// now = testNow+1ms: items expiring at +1ms..+4ms are current.
	if len(list) != 4 {
		t.Errorf("expected 4 current items, got %d", len(list))
	}
}

func TestAnnouncementService_ListCurrent_EmptyIsNonNil(t *testing.T) {
	svc := newTestAnnouncementService(newMemStore(), nil)
	list, err := svc.ListCurrent(context.Background())
	if err != nil {
		t.Fatalf("ListCurrent: %v", err)
	}
	if list == nil {
		t.Error("expected empty non-nil slice")
	}
}

func TestAnnouncementService_Create(t *testing.T) {
	store := newMemStore()
	audit := &fakeAudit{}
	svc := newTestAnnouncementService(store, audit)

	exp := testNow.Add(24 * time.Hour)
	id, err := svc.Create(context.Background(), "alice", models.NewAnnouncement{
		Message:        "Exam Friday",
		ExpirationDate: &exp,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	a, ok := store.get(id)
	if !ok {
		t.Fatalf("announcement %q not stored", id)
	}
	if a.CreatedBy != "alice" || a.StartDate != nil || !a.ExpirationDate.Equal(exp) {
		t.Errorf("unexpected stored announcement: %+v", a)
	}
	if len(audit.calls) != 1 || audit.calls[0] != (auditCall{"alice", models.AuditCreate, id}) {
		t.Errorf("unexpected audit calls: %+v", audit.calls)
	}
}

func TestAnnouncementService_Create_Validation(t *testing.T) {
	exp := testNow.Add(time.Hour)
	start := testNow
	cases := map[string]models.NewAnnouncement{
		"missing message":         {ExpirationDate: &exp, StartDate: &start},
		"missing expiration_date": {Message: "Exam Friday", StartDate: &start},
		"both missing":            {StartDate: &start},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			store := newMemStore()
			svc := newTestAnnouncementService(store, nil)
			_, err := svc.Create(context.Background(), "alice", in)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
			if len(store.docs) != 0 {
				t.Error("nothing should be inserted")
			}
		})
	}
}

func TestAnnouncementService_Create_Unauthenticated(t *testing.T) {
	exp := testNow.Add(time.Hour)
	in := models.NewAnnouncement{Message: "Exam Friday", ExpirationDate: &exp}

	for token, want := range map[string]error{"": ErrUnauthenticated, "mallory": ErrInvalidUser} {
		store := newMemStore()
		svc := newTestAnnouncementService(store, nil)
		_, err := svc.Create(context.Background(), token, in)
		if !errors.Is(err, want) {
			t.Errorf("token %q: expected %v, got %v", token, want, err)
		}
		if store.calls != 0 {
			t.Errorf("token %q: repository touched %d times", token, store.calls)
		}
	}
}

func TestAnnouncementService_Update(t *testing.T) {
	store := newMemStore()
	audit := &fakeAudit{}
	svc := newTestAnnouncementService(store, audit)
	ctx := context.Background()
	start := testNow.Add(time.Hour)
	id, _ := store.Insert(ctx, models.Announcement{Message: "old", StartDate: &start, ExpirationDate: testNow.Add(2 * time.Hour), CreatedBy: "alice"})

	// bob is not the author; no ownership check applies.
	err := svc.Update(ctx, "bob", id, models.AnnouncementPatch{Message: ptr("new"), ClearStartDate: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	a, _ := store.get(id)
	if a.Message != "new" || a.StartDate != nil || a.CreatedBy != "alice" {
		t.Errorf("unexpected announcement after update: %+v", a)
	}
	if len(audit.calls) != 1 || audit.calls[0].username != "bob" || audit.calls[0].action != models.AuditUpdate {
		t.Errorf("unexpected audit calls: %+v", audit.calls)
	}
}

func TestAnnouncementService_Update_NotFound(t *testing.T) {
	store := newMemStore()
	svc := newTestAnnouncementService(store, nil)
	ctx := context.Background()
	id, _ := store.Insert(ctx, models.Announcement{Message: "keep", ExpirationDate: testNow.Add(time.Hour)})

	err := svc.Update(ctx, "alice", "nonexistent-id", models.AnnouncementPatch{Message: ptr("x")})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if a, _ := store.get(id); a.Message != "keep" || len(store.docs) != 1 {
		t.Errorf("repository changed: %+v", store.docs)
	}
}

func TestAnnouncementService_Update_Unauthenticated(t *testing.T) {
	store := newMemStore()
	svc := newTestAnnouncementService(store, nil)
	err := svc.Update(context.Background(), "", "ann-1", models.AnnouncementPatch{Message: ptr("x")})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
	if store.calls != 0 {
		t.Errorf("repository touched %d times", store.calls)
	}
}

func TestAnnouncementService_Delete(t *testing.T) {
	store := newMemStore()
	svc := newTestAnnouncementService(store, &fakeAudit{err: errors.New("audit down")})
	ctx := context.Background()
	id, _ := store.Insert(ctx, models.Announcement{Message: "bye", ExpirationDate: testNow.Add(time.Hour)})

	if err := svc.Delete(ctx, "alice", id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := store.get(id); ok {
		t.Error("announcement still stored")
	}
	if err := svc.Delete(ctx, "alice", id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: expected ErrNotFound, got %v", err)
	}
}

func TestAnnouncementService_Delete_InvalidUser(t *testing.T) {
	store := newMemStore()
	svc := newTestAnnouncementService(store, nil)
	if err := svc.Delete(context.Background(), "mallory", "ann-1"); !errors.Is(err, ErrInvalidUser) {
		t.Errorf("expected ErrInvalidUser, got %v", err)
	}
	if store.calls != 0 {
		t.Errorf("repository touched %d times", store.calls)
	}
}

func TestAnnouncementService_ExamFridayScenario(t *testing.T) {
	store := newMemStore()
	svc := newTestAnnouncementService(store, nil)
	ctx := context.Background()

	exp := testNow.Add(24 * time.Hour)
	id, err := svc.Create(ctx, "alice", models.NewAnnouncement{Message: "Exam Friday", ExpirationDate: &exp})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, _ := svc.ListCurrent(ctx)
	if len(list) != 1 || list[0].ID != id || list[0].CreatedBy != "alice" {
		t.Fatalf("expected the new announcement to be current, got %+v", list)
	}

	svc.Now = func() time.Time { return exp.Add(time.Second) }
	list, _ = svc.ListCurrent(ctx)
	if len(list) != 0 {
		t.Errorf("expected no current announcements after expiry, got %+v", list)
	}
	if _, ok := store.get(id); !ok {
		t.Error("expired announcement should remain stored")
	}
}
