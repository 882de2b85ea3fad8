package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts uint) Retry {
	return New(
		WithAttempts(attempts),
		WithDelay(time.Millisecond),
		WithMaxDelay(5*time.Millisecond),
	)
}

func TestExecute(t *testing.T) {
	t.Run("should succeed on the first attempt", func(t *testing.T) {
		calls := 0
		err := fastRetry(3).Execute(t.Context(), func() error {
			calls++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("should retry until the operation succeeds", func(t *testing.T) {
		calls := 0
		err := fastRetry(5).Execute(t.Context(), func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("should give up after the configured attempts", func(t *testing.T) {
		permanent := errors.New("permanent")

		calls := 0
		err := fastRetry(3).Execute(t.Context(), func() error {
			calls++
			return permanent
		})

		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 3, calls)
	})

	t.Run("should return only the last error by default", func(t *testing.T) {
		first := errors.New("first")
		last := errors.New("last")

		calls := 0
		err := fastRetry(2).Execute(t.Context(), func() error {
			calls++
			if calls == 1 {
				return first
			}
			return last
		})

		assert.ErrorIs(t, err, last)
		assert.NotErrorIs(t, err, first)
	})

	t.Run("should stop when the context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())

		calls := 0
		err := New(
			WithAttempts(10),
			WithDelay(50*time.Millisecond),
		).Execute(ctx, func() error {
			calls++
			cancel()
			return errors.New("transient")
		})

		require.Error(t, err)
		assert.LessOrEqual(t, calls, 2)
	})
}
