package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"quinceinvitation/internal/domain"
)

type loggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver returns a DeliveryObserver that logs each attempt.
func NewLoggingObserver(logger *slog.Logger) domain.DeliveryObserver {
	return &loggingObserver{logger: logger}
}

func (o *loggingObserver) Observe(ctx context.Context, sub *domain.RSVPSubmission, result domain.DeliveryResult) {
	attrs := []any{
		"full_name", sub.FullName,
		"status_code", result.StatusCode,
		"duration_ms", result.Duration.Milliseconds(),
	}
	if result.Delivered() {
		o.logger.InfoContext(ctx, "rsvp delivered to form service", attrs...)
		return
	}
	if result.Body != "" {
		attrs = append(attrs, "body", result.Body)
	}
	o.logger.ErrorContext(ctx, "rsvp delivery failed", append(attrs, "err", result.Err)...)
}

type alertObserver struct {
	logger  *slog.Logger
	emails  domain.EmailService
	breaker domain.CircuitBreaker
	to      string
	timeout time.Duration
}

// NewAlertObserver returns a DeliveryObserver that e-mails to about failed deliveries.
// Delivered results are ignored. An empty to disables alerts. breaker, when not nil,
// guards the mail provider so an outage of the form service does not turn into a
// storm of failing sends; skipped alerts are logged.
func NewAlertObserver(logger *slog.Logger, emails domain.EmailService, breaker domain.CircuitBreaker, to string) domain.DeliveryObserver {
	if breaker == nil {
		breaker = alwaysClosed{}
	}
	return &alertObserver{logger: logger, emails: emails, breaker: breaker, to: to, timeout: 10 * time.Second}
}

func (o *alertObserver) Observe(ctx context.Context, sub *domain.RSVPSubmission, result domain.DeliveryResult) {
	if result.Delivered() || o.to == "" {
		return
	}
	reason := "unknown"
	if result.Err != nil {
		reason = result.Err.Error()
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	err := o.breaker.Execute(func() error {
		return o.emails.SendDeliveryAlert(ctx, &domain.DeliveryAlertEmailData{
			To:         o.to,
			FullName:   sub.FullName,
			Timestamp:  sub.Timestamp.Format(domain.TimestampLayout),
			StatusCode: result.StatusCode,
			Reason:     reason,
		})
	})
	switch {
	case errors.Is(err, domain.ErrBreakerOpen):
		o.logger.WarnContext(ctx, "delivery alert skipped", "full_name", sub.FullName, "err", err)
	case err != nil:
		o.logger.ErrorContext(ctx, "delivery alert failed", "full_name", sub.FullName, "err", err)
	}
}

type alwaysClosed struct{}

func (alwaysClosed) Execute(fn func() error) error { return fn() }
