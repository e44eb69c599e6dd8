package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"mandoubi/internal/core/domain"
)

func TestSideEffectPolicyRetries(t *testing.T) {
	p := SideEffectPolicy{Timeout: time.Second, Retries: 2}

	calls := 0
	err := p.run(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errBackend
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("transient: err = %v, calls = %d", err, calls)
	}

	calls = 0
	err = p.run(context.Background(), func(context.Context) error {
		calls++
		return errBackend
	})
	if !errors.Is(err, errBackend) || calls != 3 {
		t.Errorf("persistent: err = %v, calls = %d", err, calls)
	}
}

func TestSideEffectPolicyStopsOnPermanentErrors(t *testing.T) {
	p := SideEffectPolicy{Retries: 3}
	for _, permanent := range []error{domain.ErrNotFound, domain.ErrInvalidInput, domain.ErrForbidden, domain.ErrDuplicateEntry} {
		calls := 0
		err := p.run(context.Background(), func(context.Context) error {
			calls++
			return fmt.Errorf("wrapped: %w", permanent)
		})
		if !errors.Is(err, permanent) || calls != 1 {
			t.Errorf("%v: err = %v, calls = %d", permanent, err, calls)
		}
	}
}

func TestSideEffectPolicyBoundsEachAttempt(t *testing.T) {
	p := SideEffectPolicy{Timeout: 10 * time.Millisecond}
	err := p.run(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("got %v, want DeadlineExceeded", err)
	}
}
