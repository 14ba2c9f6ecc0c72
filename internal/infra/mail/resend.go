package mail

import (
	"context"
	"log/slog"

	"swimbooking/internal/pkg/errs"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers mail through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) Send(ctx context.Context, to, subject, html string) error {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return errs.Wrap(err, "resend send failed")
	}
	slog.Info("email sent", "message_id", sent.Id, "subject", subject)
	return nil
}

// LogSender stands in for Resend when no API key is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, to, subject, _ string) error {
	slog.Info("email delivery disabled, dropping message", "to", to, "subject", subject)
	return nil
}
