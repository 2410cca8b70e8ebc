// Package retry provides a bounded retry policy for transport calls.
package retry

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Policy retries an operation up to MaxAttempts times, sleeping Backoff(n)
// after the n-th failed attempt.
type Policy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
	// Retryable reports whether an error is worth another attempt. Nil retries everything.
	Retryable func(err error) bool
	// OnRetry is called before each wait.
	OnRetry func(attempt int, wait time.Duration, err error)
	Logger  *zap.Logger
}

// Exponential returns base*2^(attempt-1), capped at max when max > 0.
func Exponential(base, max time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		if attempt <= 0 {
			attempt = 1
		}
		if base <= 0 {
			base = time.Second
		}
		delay := base * time.Duration(1<<(attempt-1))
		if max > 0 && delay > max {
			delay = max
		}
		return delay
	}
}

// Do runs fn until it succeeds, the attempts are exhausted, the error is not
// retryable, or ctx is done. The last error is returned.
func (p Policy) Do(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	backoff := p.Backoff
	if backoff == nil {
		backoff = Exponential(time.Second, 0)
	}
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		wait := backoff(attempt)
		logger.Warn("Attempt failed, retrying",
			zap.String("op", name),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Duration("wait", wait),
			zap.Error(err))
		if p.OnRetry != nil {
			p.OnRetry(attempt, wait, err)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%s: %w (last error: %v)", name, ctx.Err(), err)
		case <-timer.C:
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, err)
}
