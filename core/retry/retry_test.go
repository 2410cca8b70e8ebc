package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestExponential(t *testing.T) {
	b := Exponential(time.Second, 3*time.Second)
	assert.Equal(t, time.Second, b(0))
	assert.Equal(t, time.Second, b(1))
	assert.Equal(t, 2*time.Second, b(2))
	assert.Equal(t, 3*time.Second, b(3))

	unbounded := Exponential(time.Second, 0)
	assert.Equal(t, 4*time.Second, unbounded(3))
}

func TestPolicy_Do(t *testing.T) {
	noWait := func(int) time.Duration { return 0 }

	t.Run("Succeeds after failures", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		var waits []int
		p := Policy{
			MaxAttempts: 3,
			Backoff:     noWait,
			Logger:      zap.New(core),
			OnRetry:     func(attempt int, _ time.Duration, _ error) { waits = append(waits, attempt) },
		}

		calls := 0
		err := p.Do(context.Background(), "fetch", func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("boom")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []int{1, 2}, waits)
		assert.Equal(t, 2, logs.Len())
	})

	t.Run("Exhausted", func(t *testing.T) {
		sentinel := errors.New("down")
		p := Policy{MaxAttempts: 2, Backoff: noWait}

		calls := 0
		err := p.Do(context.Background(), "fetch", func(context.Context) error {
			calls++
			return sentinel
		})

		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, 2, calls)
	})

	t.Run("Not retryable", func(t *testing.T) {
		p := Policy{MaxAttempts: 5, Backoff: noWait, Retryable: func(error) bool { return false }}

		calls := 0
		err := p.Do(context.Background(), "fetch", func(context.Context) error {
			calls++
			return errors.New("404")
		})

		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("Context cancelled during wait", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		p := Policy{MaxAttempts: 3, Backoff: func(int) time.Duration { return time.Hour }}

		err := p.Do(ctx, "fetch", func(context.Context) error {
			cancel()
			return errors.New("boom")
		})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
