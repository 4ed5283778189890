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

// ShareMessage is the templated invitation built for an event.
type ShareMessage struct {
	Title string
	Text  string
	URL   string
	Event *Event
}

// Sharer delegates an invitation to a native share capability.
// Implementations without one return ErrShareUnsupported.
type Sharer interface {
	Available() bool
	Share(ctx context.Context, msg ShareMessage) error
}

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(message string)
}
