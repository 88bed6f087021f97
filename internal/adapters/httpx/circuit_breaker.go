package httpx

import (
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"quinceinvitation/internal/domain"
)

type circuitBreakerWrapper struct {
	breaker *gobreaker.CircuitBreaker
}

// NewCircuitBreaker trips after maxFailures consecutive failures and stays open for cooldown.
// A maxFailures of zero is treated as one.
func NewCircuitBreaker(name string, cooldown time.Duration, maxFailures uint32) domain.CircuitBreaker {
	if maxFailures == 0 {
		maxFailures = 1
	}
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	}
	return &circuitBreakerWrapper{
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Execute returns an error wrapping domain.ErrBreakerOpen when the call was not attempted.
func (g *circuitBreakerWrapper) Execute(fn func() error) error {
	_, err := g.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("breaker (%s): %w: %v", g.breaker.Name(), domain.ErrBreakerOpen, err)
	}
	return err
}
