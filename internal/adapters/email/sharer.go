package email

import (
	"context"
	"fmt"

	"shoresquad/internal/domain"
)

const shareTemplate = "share"

type emailSharer struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	to       string
}

// NewSharer returns a Sharer that mails invitations to the configured crew
// address. With no mailer or no recipient it reports itself unavailable.
func NewSharer(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, to string) domain.Sharer {
	return &emailSharer{mailer: mailer, renderer: renderer, to: to}
}

func (s *emailSharer) Available() bool {
	return s.mailer != nil && s.to != ""
}

func (s *emailSharer) Share(ctx context.Context, msg domain.ShareMessage) error {
	if !s.Available() {
		return domain.ErrShareUnsupported
	}
	subject, html, text, err := s.renderer.Render(shareTemplate, msg)
	if err != nil {
		return fmt.Errorf("render share email: %w", err)
	}
	return s.mailer.Send(ctx, s.to, subject, html, text)
}
