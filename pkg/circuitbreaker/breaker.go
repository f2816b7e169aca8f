// Package circuitbreaker wraps sony/gobreaker with typed execution helpers.
// The portal fronts a single rate-limited table service, so a short open
// window with a degraded fallback beats hammering a failing upstream.
package circuitbreaker

import (
	"fmt"
	"time"

	"github.com/mentorportal/mentor-portal-api/pkg/logger"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Config holds circuit breaker configuration
type Config struct {
	Name        string
	MaxRequests uint32        // Probe budget while half-open
	Interval    time.Duration // Failure-count reset interval while closed
	Timeout     time.Duration // How long the breaker stays open
	ReadyToTrip func(counts gobreaker.Counts) bool
}

// DefaultConfig trips after 3+ requests with a 60% failure ratio and retries
// the upstream after 30 seconds
func DefaultConfig(name string) Config {
	return Config{
		Name:        name,
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
	}
}

// NewCircuitBreaker creates a breaker that logs every state transition
func NewCircuitBreaker(cfg Config) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: cfg.ReadyToTrip,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
}

// Execute runs fn through the breaker, preserving its result type
func Execute[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}

	typed, ok := result.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("type assertion failed in circuit breaker")
	}
	return typed, nil
}

// ExecuteWithFallback runs fn through the breaker and switches to fallback
// while the breaker is open. Ordinary upstream errors pass through so the
// caller can distinguish a failing call from a suppressed one.
func ExecuteWithFallback[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error), fallback func() (T, error)) (T, error) {
	result, err := Execute(cb, fn)
	if err == gobreaker.ErrOpenState {
		return fallback()
	}
	return result, err
}

// GetState returns the breaker state as a string for health reporting
func GetState(cb *gobreaker.CircuitBreaker) string {
	return cb.State().String()
}
