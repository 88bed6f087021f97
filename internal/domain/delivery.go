package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDeliveryFailed is carried inside a failed DeliveryResult when the form
// service answered with a non-2xx status.
var ErrDeliveryFailed = errors.New("form service rejected submission")

// ErrBreakerOpen is returned when a circuit breaker skipped a call.
var ErrBreakerOpen = errors.New("circuit open")

// CircuitBreaker runs fn unless too many consecutive calls have failed recently.
// When it skips fn, the error wraps ErrBreakerOpen.
type CircuitBreaker interface {
	Execute(fn func() error) error
}

// DeliveryStatus is the outcome of forwarding a submission downstream.
type DeliveryStatus string

const (
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// DeliveryResult describes a single forwarding attempt. StatusCode and Body are
// zero when the request never got a response.
type DeliveryResult struct {
	Status     DeliveryStatus
	StatusCode int
	Body       string
	Err        error
	Duration   time.Duration
}

// Delivered reports whether the form service accepted the submission.
func (r DeliveryResult) Delivered() bool {
	return r.Status == DeliveryDelivered
}

// FormForwarder sends a submission to the external form-collection service.
// Implementations never return an error; failures are described by the result.
type FormForwarder interface {
	Forward(ctx context.Context, sub *RSVPSubmission) DeliveryResult
}

// DeliveryObserver is notified of every forwarding attempt.
type DeliveryObserver interface {
	Observe(ctx context.Context, sub *RSVPSubmission, result DeliveryResult)
}

// MultiObserver fans a result out to each observer in order.
type MultiObserver []DeliveryObserver

func (m MultiObserver) Observe(ctx context.Context, sub *RSVPSubmission, result DeliveryResult) {
	for _, o := range m {
		if o != nil {
			o.Observe(ctx, sub, result)
		}
	}
}
