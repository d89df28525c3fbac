package services

import (
	"context"
	"fmt"
	"log"

	"eventcheckin/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendCheckinConfirmation sends the check-in receipt using the
// "checkin_confirmation" template and the given data.
func (s *emailService) SendCheckinConfirmation(ctx context.Context, data *domain.CheckinConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("checkin confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("checkin_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render checkin_confirmation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send checkin confirmation email: %w", err)
	}
	log.Printf("[EMAIL] Check-in confirmation sent to %s", data.Email)
	return nil
}
