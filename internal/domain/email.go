package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// DeliveryAlertEmailData holds data for the "RSVP not delivered" host alert.
type DeliveryAlertEmailData struct {
	To         string
	FullName   string
	Timestamp  string
	StatusCode int
	Reason     string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendDeliveryAlert(ctx context.Context, data *DeliveryAlertEmailData) error
}
