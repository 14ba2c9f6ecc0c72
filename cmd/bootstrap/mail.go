package bootstrap

import (
	"log/slog"
	"time"

	"swimbooking/internal/infra/mail"
	"swimbooking/internal/pkg/config"
	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/usecase/notify"

	"go.uber.org/fx"
)

var MailModule = fx.Module("mail",
	fx.Provide(
		NewMailSender,
		NewMailRenderer,
	),
)

// NewMailSender falls back to logging when no Resend key is configured.
func NewMailSender(cfg config.Config) notify.Sender {
	if cfg.Mail.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, notifications will only be logged")
		return mail.LogSender{}
	}
	return mail.NewResendSender(cfg.Mail.ResendAPIKey, cfg.Mail.From)
}

func NewMailRenderer(cfg config.Config) (notify.Renderer, error) {
	loc, err := time.LoadLocation(cfg.DB.TimeZone)
	if err != nil {
		return nil, errs.Wrapf(err, "invalid time zone %q", cfg.DB.TimeZone)
	}
	return mail.NewMarkdownRenderer(loc), nil
}
