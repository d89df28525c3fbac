package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// CheckinConfirmationEmailData holds data for the check-in confirmation email.
type CheckinConfirmationEmailData struct {
	Email         string
	Name          string
	EventName     string
	EventLocation string
	StartTime     time.Time
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendCheckinConfirmation(ctx context.Context, data *CheckinConfirmationEmailData) error
}
