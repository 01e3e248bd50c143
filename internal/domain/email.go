package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData holds data for the signup welcome email.
type WelcomeEmailData struct {
	Email string
	Name  string
}

// RegistrationEmailData holds data for the event registration confirmation email.
type RegistrationEmailData struct {
	Email         string
	Name          string
	EventTitle    string
	EventDate     string
	EventLocation string
}

// EmailService defines the contract for sending domain-level emails. Sends are
// best-effort: callers log failures and never fail the request over them.
type EmailService interface {
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationEmailData) error
}
