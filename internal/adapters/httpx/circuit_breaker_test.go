package httpx

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"quinceinvitation/internal/domain"
)

func TestNewCircuitBreaker(t *testing.T) {
	tests := []struct {
		name        string
		breakerName string
		cooldown    time.Duration
		maxFailures uint32
	}{
		{"Valid circuit breaker", "test-breaker", 30 * time.Second, 3},
		{"Zero cooldown", "zero-cooldown-breaker", 0, 1},
		{"Zero max failures", "zero-failures-breaker", 10 * time.Second, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breaker := NewCircuitBreaker(tt.breakerName, tt.cooldown, tt.maxFailures)

			assert.IsType(t, &circuitBreakerWrapper{}, breaker)
			wrapper := breaker.(*circuitBreakerWrapper)
			assert.Equal(t, tt.breakerName, wrapper.breaker.Name())
		})
	}
}

func TestCircuitBreakerWrapper_Execute(t *testing.T) {
	breaker := NewCircuitBreaker("exec-test", time.Minute, 3)
	testError := errors.New("test error")

	assert.NoError(t, breaker.Execute(func() error { return nil }))

	err := breaker.Execute(func() error { return testError })
	assert.ErrorIs(t, err, testError)
	assert.NotErrorIs(t, err, domain.ErrBreakerOpen)
}

func TestCircuitBreakerWrapper_Trips(t *testing.T) {
	breaker := NewCircuitBreaker("trip-test", time.Minute, 2)
	testError := errors.New("test error")

	for i := 0; i < 2; i++ {
		_ = breaker.Execute(func() error { return testError })
	}

	called := false
	err := breaker.Execute(func() error {
		called = true
		return nil
	})
	assert.False(t, called)
	assert.ErrorIs(t, err, domain.ErrBreakerOpen)
	assert.Contains(t, err.Error(), "trip-test")
}

func TestCircuitBreakerWrapper_HalfOpenRecovers(t *testing.T) {
	breaker := NewCircuitBreaker("recover-test", 20*time.Millisecond, 1)
	_ = breaker.Execute(func() error { return errors.New("boom") })
	assert.ErrorIs(t, breaker.Execute(func() error { return nil }), domain.ErrBreakerOpen)

	time.Sleep(40 * time.Millisecond)

	assert.NoError(t, breaker.Execute(func() error { return nil }))
	assert.NoError(t, breaker.Execute(func() error { return nil }))
}
