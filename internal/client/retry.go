package client

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryPolicy retries an operation with exponential backoff:
// BaseDelay, 2*BaseDelay, 4*BaseDelay, ... The Sleep func is injectable
// so tests run without real sleeps.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// Sleep waits for d or until ctx is done. Defaults to a
	// context-aware time.After wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy matches the pipeline's historical behavior:
// 3 attempts with a 10s base delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: 10 * time.Second}
}

// Do runs fn up to MaxAttempts times. Exhausting attempts returns the
// last error wrapped with the operation name; the caller decides whether
// that is fatal for its unit of work.
func (p RetryPolicy) Do(ctx context.Context, op string, fn func() error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = ctxSleep
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if attempt > 1 {
			backoff := p.BaseDelay * time.Duration(1<<uint(attempt-2))
			log.Warn().
				Str("op", op).
				Int("attempt", attempt).
				Int("max_attempts", p.MaxAttempts).
				Dur("backoff", backoff).
				Err(lastErr).
				Msg("Retrying after backoff")
			if err := sleep(ctx, backoff); err != nil {
				return err
			}
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}
	}

	log.Error().
		Str("op", op).
		Int("attempts", p.MaxAttempts).
		Err(lastErr).
		Msg("Operation failed after all retries")
	return fmt.Errorf("%s failed after %d attempts: %w", op, p.MaxAttempts, lastErr)
}

func ctxSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
