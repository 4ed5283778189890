package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoresquad/internal/domain"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

type fakeMailer struct {
	to, subject, html, text string
	err                     error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, html, text string) error {
	f.to, f.subject, f.html, f.text = to, subject, html, text
	return f.err
}

func shareMessage() domain.ShareMessage {
	event := &domain.Event{ID: 1, Name: "Sentosa Cleanup", Date: "2025-03-01T09:00", Location: "Sentosa Beach", CrewSize: 10}
	return domain.ShareMessage{
		Title: "ShoreSquad: Sentosa Cleanup",
		Text:  "Join me for a beach cleanup at Sentosa Beach! 2025-03-01T09:00",
		URL:   "http://localhost:8080/",
		Event: event,
	}
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, "crew@shoresquad.test", "ShoreSquad", discard)

	require.NoError(t, m.Send(context.Background(), "friend@example.com", "subj", "<p>hi</p>", "hi"))
	require.NotNil(t, client.input)
	assert.Equal(t, "ShoreSquad <crew@shoresquad.test>", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"friend@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "subj", aws.ToString(client.input.Message.Subject.Data))
	assert.Equal(t, "<p>hi</p>", aws.ToString(client.input.Message.Body.Html.Data))
	assert.Equal(t, "hi", aws.ToString(client.input.Message.Body.Text.Data))
}

func TestSESMailer_SendError(t *testing.T) {
	client := &fakeSES{err: errors.New("throttled")}
	m := newSESMailer(client, "crew@shoresquad.test", "", discard)

	err := m.Send(context.Background(), "friend@example.com", "subj", "", "hi")
	require.Error(t, err)
	assert.Equal(t, "crew@shoresquad.test", aws.ToString(client.input.Source))
	assert.Nil(t, client.input.Message.Body.Html)
}

func TestNewMailer_NonSESIsUnavailable(t *testing.T) {
	assert.Nil(t, NewMailer(MailerConfig{Provider: "none"}, discard))
	assert.Nil(t, NewMailer(MailerConfig{Provider: "carrier-pigeon"}, discard))
	assert.NotNil(t, NewMailer(MailerConfig{Provider: "ses", SES: SESConfig{Region: "ap-southeast-1"}}, discard))
}

func TestTemplateRenderer_Share(t *testing.T) {
	subject, html, text, err := NewTemplateRenderer().Render("share", shareMessage())
	require.NoError(t, err)
	assert.Equal(t, "ShoreSquad: Sentosa Cleanup", subject)
	assert.Contains(t, html, "Sentosa Cleanup")
	assert.Contains(t, html, "Crew Size: 10 eco-warriors")
	assert.Contains(t, text, "Join me for a beach cleanup at Sentosa Beach!")
	assert.Contains(t, text, "http://localhost:8080/")
}

func TestTemplateRenderer_EscapesHTML(t *testing.T) {
	msg := shareMessage()
	msg.Event.Name = "<script>alert(1)</script>"
	_, html, _, err := NewTemplateRenderer().Render("share", msg)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("missing", nil)
	require.Error(t, err)
}

func TestSharer(t *testing.T) {
	mailer := &fakeMailer{}
	s := NewSharer(mailer, NewTemplateRenderer(), "crew@example.com")
	require.True(t, s.Available())
	require.NoError(t, s.Share(context.Background(), shareMessage()))
	assert.Equal(t, "crew@example.com", mailer.to)
	assert.Equal(t, "ShoreSquad: Sentosa Cleanup", mailer.subject)

	unavailable := NewSharer(nil, NewTemplateRenderer(), "crew@example.com")
	assert.False(t, unavailable.Available())
	require.ErrorIs(t, unavailable.Share(context.Background(), shareMessage()), domain.ErrShareUnsupported)

	noRecipient := NewSharer(mailer, NewTemplateRenderer(), "")
	assert.False(t, noRecipient.Available())
}
