package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
// Implementations return delivery failures as ordinary errors; callers decide
// whether a failure is fatal.
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RegistrationConfirmationEmailData holds data for the registration
// confirmation email.
type RegistrationConfirmationEmailData struct {
	Email       string
	Name        string
	EventName   string
	EventDate   string
	EventVenue  string
	Token       string
	TeamMembers []string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationConfirmationEmailData) error
}
