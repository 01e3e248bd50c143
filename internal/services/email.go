package services

import (
	"context"
	"fmt"
	"log"

	"eventhub/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendWelcome sends the signup welcome email using the "welcome" template.
func (s *emailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("welcome", data)
	if err != nil {
		return fmt.Errorf("failed to render welcome template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	log.Printf("[EMAIL] Welcome email sent to %s", data.Email)
	return nil
}

// SendRegistrationConfirmation sends the event registration confirmation
// email using the "registration_confirmation" template.
func (s *emailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	if data == nil {
		return fmt.Errorf("registration email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("registration_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render registration_confirmation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send registration confirmation email: %w", err)
	}
	log.Printf("[EMAIL] Registration confirmation sent to %s", data.Email)
	return nil
}
