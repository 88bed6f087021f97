package services

import (
	"context"
	"fmt"
	"log/slog"

	"quinceinvitation/internal/domain"
)

type emailService struct {
	logger   *slog.Logger
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(logger *slog.Logger, mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{logger: logger, mailer: mailer, renderer: renderer}
}

// SendDeliveryAlert sends the host alert using the "delivery_alert" template.
func (s *emailService) SendDeliveryAlert(ctx context.Context, data *domain.DeliveryAlertEmailData) error {
	if data == nil {
		return fmt.Errorf("delivery alert data is nil")
	}
	if data.To == "" {
		return fmt.Errorf("delivery alert recipient is empty")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("delivery_alert", data)
	if err != nil {
		return fmt.Errorf("failed to render delivery_alert template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.To, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send delivery alert: %w", err)
	}
	s.logger.InfoContext(ctx, "delivery alert sent", "to", data.To, "full_name", data.FullName)
	return nil
}
