package services

import (
	"context"
	"log/slog"
	"time"

	"quinceinvitation/internal/domain"
)

type rsvpService struct {
	forwarder domain.FormForwarder
	observer  domain.DeliveryObserver
	logger    *slog.Logger
	now       func() time.Time
}

// RSVPOption customises an RSVPService.
type RSVPOption func(*rsvpService)

// WithClock overrides the clock used to stamp submissions.
func WithClock(now func() time.Time) RSVPOption {
	return func(s *rsvpService) { s.now = now }
}

// NewRSVPService returns an RSVPService that forwards valid submissions with forwarder
// and reports every attempt to observer. A nil observer discards results.
func NewRSVPService(logger *slog.Logger, forwarder domain.FormForwarder, observer domain.DeliveryObserver, opts ...RSVPOption) domain.RSVPService {
	if observer == nil {
		observer = domain.MultiObserver(nil)
	}
	s := &rsvpService{
		forwarder: forwarder,
		observer:  observer,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates fullName, forwards it and waits for the delivery result. The
// result only reaches the observer: a failed delivery still yields an accepted submission.
func (s *rsvpService) Submit(ctx context.Context, fullName string) (*domain.RSVPSubmission, error) {
	sub := domain.NewRSVPSubmission(fullName, s.now())
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "rsvp received", "full_name", sub.FullName, "timestamp", sub.Timestamp)

	// Delivery and its observers run to completion even if the guest's request goes away.
	detached := context.WithoutCancel(ctx)
	result := s.forwarder.Forward(detached, sub)
	s.observer.Observe(detached, sub, result)

	s.logger.InfoContext(ctx, "rsvp confirmed", "full_name", sub.FullName, "delivery", result.Status)
	return sub, nil
}
