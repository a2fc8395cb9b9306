// Package circuitbreaker wraps github.com/sony/gobreaker and publishes
// breaker state to the metrics registry.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"newsdesk/internal/observability/metrics"
)

// Config tunes a breaker. It trips after TripAfter consecutive failures,
// stays open for OpenTimeout, then lets HalfOpenRequests probes through.
type Config struct {
	Name             string
	TripAfter        uint32
	OpenTimeout      time.Duration
	HalfOpenRequests uint32
	// Interval clears the closed-state counters; zero never clears them.
	Interval time.Duration
	// IsSuccessful decides whether an error counts against the breaker.
	// Nil treats every non-nil error as a failure.
	IsSuccessful func(err error) bool
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DBConfig is used for the news repository.
func DBConfig() Config {
	return Config{
		Name:             "news-repository",
		TripAfter:        5,
		OpenTimeout:      30 * time.Second,
		HalfOpenRequests: 3,
		Interval:         time.Minute,
	}
}

type CircuitBreaker struct {
	cb *gobreaker.CircuitBreaker
}

func New(cfg Config) *CircuitBreaker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tripAfter := max(cfg.TripAfter, 1)

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         cfg.Name,
		MaxRequests:  cfg.HalfOpenRequests,
		Interval:     cfg.Interval,
		Timeout:      cfg.OpenTimeout,
		IsSuccessful: cfg.IsSuccessful,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= tripAfter
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			metrics.SetCircuitBreakerState(name, gaugeValue(to))
		},
	})
	metrics.SetCircuitBreakerState(cfg.Name, gaugeValue(gobreaker.StateClosed))
	return &CircuitBreaker{cb: cb}
}

// Do runs fn through b. While the circuit is open it returns
// gobreaker.ErrOpenState without calling fn.
func Do[T any](b *CircuitBreaker, fn func() (T, error)) (T, error) {
	var out T
	_, err := b.cb.Execute(func() (interface{}, error) {
		var err error
		out, err = fn()
		return nil, err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (b *CircuitBreaker) Name() string           { return b.cb.Name() }
func (b *CircuitBreaker) State() gobreaker.State { return b.cb.State() }
func (b *CircuitBreaker) IsOpen() bool           { return b.cb.State() == gobreaker.StateOpen }

// StateName returns "closed", "half-open" or "open".
func (b *CircuitBreaker) StateName() string { return b.cb.State().String() }

func gaugeValue(s gobreaker.State) int {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	}
	return 0
}
