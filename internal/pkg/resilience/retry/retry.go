// Package retry provides a configurable retry mechanism for operations that
// may fail temporarily. It wraps the retry-go package from Avast behind a
// small interface with functional options.
//
// The default strategy is exponential backoff, which fits most transient
// failure scenarios (rate limits, flaky upstreams, slow dependencies).
//
// Basic usage:
//
//	r := retry.New()
//	err := r.Execute(ctx, func() error {
//	    return someOperation()
//	})
package retry

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// Retry defines the interface for retry operations.
type Retry interface {
	// Execute runs the given function with the configured retry logic.
	//
	// The context allows for cancellation and timeout control: when it is
	// canceled, Execute stops retrying and returns the context error. The
	// operation should be idempotent, and should return nil on success or an
	// error on failure.
	//
	// Execute returns nil if the operation succeeds within the configured
	// number of attempts, or an error if all attempts fail.
	Execute(ctx context.Context, operation func() error) error
}

// config holds internal settings for the retry mechanism.
type config struct {
	attempts    uint          // maximum number of attempts, including the first
	delay       time.Duration // base delay between retry attempts
	maxDelay    time.Duration // cap on the backoff delay
	lastErrOnly bool          // whether to return only the last error
}

// Option defines a functional option for configuring the retry mechanism.
// Options are applied in the order they are provided to New().
type Option func(*config)

// retrier implements the Retry interface using the retry-go package.
type retrier struct {
	cfg config
}

// Compile-time assertion that retrier implements Retry interface
var _ Retry = (*retrier)(nil)

// New creates and returns a Retry implementation configured with the
// provided options. Defaults:
//
//   - attempts:    3 (1 initial attempt + 2 retries)
//   - delay:       1 second (base delay, grows with exponential backoff)
//   - maxDelay:    5 seconds
//   - lastErrOnly: true
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       1 * time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{
		cfg: cfg,
	}
}

// Execute implements the Retry interface. The operation is attempted
// immediately, then retried with exponential backoff up to the configured
// maximum number of attempts.
func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	options := []retry.Option{
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.Context(ctx),
	}

	return retry.Do(operation, options...)
}

// WithAttempts sets the maximum number of attempts, including the initial one.
// Default: 3.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base delay used for the first retry. Subsequent delays
// grow exponentially. Default: 1 second.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the exponential growth of the delay between retries.
// Default: 5 seconds.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly controls whether only the error from the final attempt is
// returned (true) or all attempt errors are combined (false). Default: true.
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}
