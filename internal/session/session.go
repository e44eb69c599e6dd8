package session

import (
	"context"
	"errors"
	"time"

	"mandoubi/internal/core/domain"
)

// KeyPrefix namespaces session keys in the store
const KeyPrefix = "mandoubi_session:"

// ErrNotFound is returned when a session is unknown or expired
var ErrNotFound = errors.New("session not found")

// Session is the current-user record of one login.
// User is a snapshot taken at login and refreshed on each status poll.
type Session struct {
	ID        string       `json:"id"`
	User      *domain.User `json:"user"`
	CreatedAt time.Time    `json:"created_at"`
}

// Store persists sessions
type Store interface {
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Session, error)
}
