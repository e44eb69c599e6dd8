package services

import (
	"context"
	"errors"
	"time"

	"mandoubi/internal/core/domain"
)

// SideEffectPolicy bounds a best-effort side effect: each attempt gets Timeout,
// and a failed attempt is retried up to Retries more times.
type SideEffectPolicy struct {
	Timeout time.Duration
	Retries int
}

// DefaultSideEffectPolicy is used when a service is built without one
var DefaultSideEffectPolicy = SideEffectPolicy{Timeout: 5 * time.Second, Retries: 1}

// run executes op until it succeeds, fails permanently or the attempts run out
func (p SideEffectPolicy) run(ctx context.Context, op func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= p.Retries; attempt++ {
		attemptCtx, cancel := ctx, context.CancelFunc(func() {})
		if p.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		}
		err = op(attemptCtx)
		cancel()

		if err == nil || !retryable(err) || ctx.Err() != nil {
			return err
		}
	}
	return err
}

// retryable excludes failures another attempt cannot fix
func retryable(err error) bool {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrDuplicateEntry):
		return false
	}
	return true
}
