package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mandoubi/internal/core/domain"

	"github.com/google/uuid"
)

// Manager owns the session lifecycle: open on login, hydrate on each request,
// close on logout or suspension.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// NewManager creates a session manager. ttl bounds how long an idle session lives.
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl, now: time.Now}
}

// Open starts a new session for user
func (m *Manager) Open(ctx context.Context, user *domain.User) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		User:      snapshot(user),
		CreatedAt: m.now(),
	}
	if err := m.store.Save(ctx, sess, m.ttl); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	return sess, nil
}

// Hydrate restores a session by id
func (m *Manager) Hydrate(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	return m.store.Get(ctx, id)
}

// Refresh replaces the user snapshot and extends the session
func (m *Manager) Refresh(ctx context.Context, sess *Session, user *domain.User) error {
	sess.User = snapshot(user)
	return m.store.Save(ctx, sess, m.ttl)
}

// Close tears a session down. Closing an unknown session succeeds.
func (m *Manager) Close(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}

// CloseUser closes every session of userID and returns how many were closed
func (m *Manager) CloseUser(ctx context.Context, userID string) (int, error) {
	sessions, err := m.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list sessions: %w", err)
	}

	closed := 0
	for _, sess := range sessions {
		if sess.User == nil || sess.User.ID != userID {
			continue
		}
		if err := m.Close(ctx, sess.ID); err != nil {
			return closed, err
		}
		closed++
	}
	return closed, nil
}

// List returns every open session
func (m *Manager) List(ctx context.Context) ([]*Session, error) {
	return m.store.List(ctx)
}

// snapshot copies user without the credential
func snapshot(user *domain.User) *domain.User {
	u := *user
	u.Password = ""
	return &u
}
