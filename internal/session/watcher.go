package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"mandoubi/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// UserLookup loads the current state of a user
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// ============================================================
// Suspension watcher: closes sessions of suspended users
// ============================================================

// Watcher runs the periodic suspension sweep
type Watcher struct {
	manager  *Manager
	users    UserLookup
	interval time.Duration
	cron     *cron.Cron

	mu      sync.Mutex
	started bool
}

// NewWatcher creates a watcher sweeping every interval
func NewWatcher(manager *Manager, users UserLookup, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Watcher{
		manager:  manager,
		users:    users,
		interval: interval,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Start schedules the sweep
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}

	_, err := w.cron.AddFunc(fmt.Sprintf("@every %s", w.interval), func() {
		ctx, cancel := context.WithTimeout(context.Background(), w.interval)
		defer cancel()
		if closed := w.Sweep(ctx); closed > 0 {
			log.Printf("🔒 Closed %d session(s) of suspended users", closed)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule session sweep: %w", err)
	}

	w.cron.Start()
	w.started = true
	log.Printf("🚀 Session watcher started [every %s]", w.interval)
	return nil
}

// Stop cancels the schedule and waits for a running sweep to finish
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}

	<-w.cron.Stop().Done()
	w.started = false
	log.Println("🛑 Session watcher stopped")
}

// Sweep closes every session whose user is suspended or gone.
// Returns the number of sessions closed.
func (w *Watcher) Sweep(ctx context.Context) int {
	sessions, err := w.manager.List(ctx)
	if err != nil {
		log.Printf("❌ Session sweep list error: %v", err)
		return 0
	}

	closed := 0
	for _, sess := range sessions {
		if sess.User == nil {
			continue
		}

		user, err := w.users.GetByID(ctx, sess.User.ID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
		case err != nil:
			log.Printf("⚠️ Session sweep lookup %s error: %v", sess.User.ID, err)
			continue
		case !user.IsSuspended():
			continue
		}

		if err := w.manager.Close(ctx, sess.ID); err != nil {
			log.Printf("❌ Session sweep close %s error: %v", sess.ID, err)
			continue
		}
		closed++
	}
	return closed
}
