// Package retry re-runs an operation with capped exponential backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"syscall"
	"time"
)

// Config describes a backoff schedule. Attempt n (1-based) waits
// min(InitialDelay * Multiplier^(n-1), MaxDelay) plus up to JitterFraction
// of that before the next try.
type Config struct {
	MaxAttempts    int
	InitialDelay   time.Duration
	MaxDelay       time.Duration
	Multiplier     float64
	JitterFraction float64

	// Retryable classifies errors. Nil means IsRetryable.
	Retryable func(error) bool
	// Logger defaults to slog.Default().
	Logger *slog.Logger

	sleep func(context.Context, time.Duration) error
}

// DBStartupConfig waits for the database during boot: ten attempts over
// roughly half a minute. Any error other than cancellation is retried
// because drivers seldom expose a typed network error while connecting.
func DBStartupConfig() Config {
	return Config{
		MaxAttempts:    10,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       5 * time.Second,
		Multiplier:     2,
		JitterFraction: 0.1,
		Retryable: func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		},
	}
}

// ErrExhausted wraps the last error once every attempt has failed.
var ErrExhausted = errors.New("retry attempts exhausted")

// WithBackoff calls fn until it succeeds, fails with a non-retryable error,
// runs out of attempts or ctx is done.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	retryable := cfg.Retryable
	if retryable == nil {
		retryable = IsRetryable
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sleep := cfg.sleep
	if sleep == nil {
		sleep = sleepCtx
	}
	attempts := max(cfg.MaxAttempts, 1)

	var err error
	for n := 1; ; n++ {
		if err = fn(); err == nil {
			if n > 1 {
				logger.Info("operation succeeded after retry", slog.Int("attempt", n))
			}
			return nil
		}
		if !retryable(err) {
			return err
		}
		if n == attempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempts, err)
		}

		wait := cfg.delay(n)
		logger.Warn("operation failed, retrying",
			slog.Int("attempt", n),
			slog.Int("max_attempts", attempts),
			slog.Duration("delay", wait),
			slog.Any("error", err))
		if serr := sleep(ctx, wait); serr != nil {
			return fmt.Errorf("retry aborted: %w", serr)
		}
	}
}

// delay returns the pause after the n-th failed attempt.
func (c Config) delay(n int) time.Duration {
	d := float64(c.InitialDelay)
	for i := 1; i < n; i++ {
		d *= c.Multiplier
		if c.MaxDelay > 0 && d >= float64(c.MaxDelay) {
			d = float64(c.MaxDelay)
			break
		}
	}
	if c.MaxDelay > 0 && d > float64(c.MaxDelay) {
		d = float64(c.MaxDelay)
	}
	if j := min(c.JitterFraction, 1); j > 0 {
		d += rand.Float64() * d * j // #nosec G404
	}
	return time.Duration(d)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRetryable reports whether err looks like a transient network failure.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT, syscall.ENETUNREACH} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
