package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"mandoubi/internal/core/domain"
)

type fakeUsers map[string]*domain.User

func (f fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func TestManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour)
	ali := &domain.User{ID: "u1", Name: "Ali", Password: "hash", Role: domain.RoleAgent, Status: domain.UserActive}

	sess, err := m.Open(ctx, ali)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if sess.User.Password != "" {
		t.Error("session snapshot must not carry the credential")
	}

	got, err := m.Hydrate(ctx, sess.ID)
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if got.User.Name != "Ali" {
		t.Errorf("hydrated user = %+v", got.User)
	}

	if err := m.Close(ctx, sess.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := m.Hydrate(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after close: got %v, want ErrNotFound", err)
	}
	if err := m.Close(ctx, sess.ID); err != nil {
		t.Errorf("second close should succeed: %v", err)
	}
	if _, err := m.Hydrate(ctx, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty id: got %v", err)
	}
}

func TestCloseUser(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour)
	sara := &domain.User{ID: "u2", Name: "Sara"}
	ali := &domain.User{ID: "u1", Name: "Ali"}

	m.Open(ctx, sara)
	m.Open(ctx, sara)
	keep, _ := m.Open(ctx, ali)

	closed, err := m.CloseUser(ctx, "u2")
	if err != nil {
		t.Fatalf("close user: %v", err)
	}
	if closed != 2 {
		t.Errorf("closed = %d, want 2", closed)
	}
	if _, err := m.Hydrate(ctx, keep.ID); err != nil {
		t.Errorf("other user's session should survive: %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Save(ctx, &Session{ID: "s1", User: &domain.User{ID: "u1"}}, time.Minute)

	now = now.Add(59 * time.Second)
	if _, err := store.Get(ctx, "s1"); err != nil {
		t.Fatalf("live session: %v", err)
	}

	now = now.Add(time.Second)
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired session: got %v", err)
	}
	if list, _ := store.List(ctx); len(list) != 0 {
		t.Errorf("expired session listed: %d", len(list))
	}
}

func TestWatcherSweepClosesSuspended(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour)

	users := fakeUsers{
		"u1": {ID: "u1", Name: "Ali", Status: domain.UserActive},
		"u2": {ID: "u2", Name: "Sara", Status: domain.UserActive},
	}
	aliSess, _ := m.Open(ctx, users["u1"])
	saraSess, _ := m.Open(ctx, users["u2"])
	ghostSess, _ := m.Open(ctx, &domain.User{ID: "u9"})

	w := NewWatcher(m, users, time.Second)
	if closed := w.Sweep(ctx); closed != 1 {
		t.Fatalf("first sweep closed %d, want 1 (deleted user)", closed)
	}
	if _, err := m.Hydrate(ctx, ghostSess.ID); !errors.Is(err, ErrNotFound) {
		t.Error("session of a deleted user should be closed")
	}

	users["u2"].Status = domain.UserSuspended
	if closed := w.Sweep(ctx); closed != 1 {
		t.Fatalf("second sweep closed %d, want 1", closed)
	}
	if _, err := m.Hydrate(ctx, saraSess.ID); !errors.Is(err, ErrNotFound) {
		t.Error("suspended user's session should be closed")
	}
	if _, err := m.Hydrate(ctx, aliSess.ID); err != nil {
		t.Errorf("active user's session should survive: %v", err)
	}
}

func TestWatcherStartStop(t *testing.T) {
	w := NewWatcher(NewManager(NewMemoryStore(), time.Hour), fakeUsers{}, time.Second)
	if err := w.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("second start: %v", err)
	}
	w.Stop()
	w.Stop()
}
