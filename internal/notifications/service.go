package notifications

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"slipflow/internal/config"
	"slipflow/internal/slip"
)

// Service defines the notification surface exposed to workflow components.
// It satisfies workflow.Notifier.
type Service interface {
	SlipCreated(ctx context.Context, created *slip.Slip) error
	DispatchReviewed(ctx context.Context, dispatch, retroactiveQC *slip.Slip) error
	TestNotification(ctx context.Context) error
}

// SettingsSource reads the global email test-mode toggle before every send.
// docstore.Store satisfies this.
type SettingsSource interface {
	EmailTestingEnabled(ctx context.Context) (bool, error)
}

// sender abstracts SMTP delivery so the service can be exercised without a
// mail server.
type sender interface {
	Send(ctx context.Context, msg *mail.Msg) error
}

// NewService builds an email notification service. When no SMTP host is
// configured, a noop implementation is returned.
func NewService(cfg *config.Config, settings SettingsSource, logger *slog.Logger) (Service, error) {
	host := strings.TrimSpace(cfg.Notify.SMTPHost)
	if host == "" {
		return noopService{}, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Notify.SMTPPort),
		mail.WithTimeout(time.Duration(cfg.Notify.RequestTimeout) * time.Second),
	}
	if cfg.Notify.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Notify.SMTPUser),
			mail.WithPassword(cfg.Notify.SMTPPass),
		)
	}
	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, err
	}

	return newMailService(cfg, settings, smtpSender{client: client}, logger), nil
}

type smtpSender struct {
	client *mail.Client
}

func (s smtpSender) Send(ctx context.Context, msg *mail.Msg) error {
	return s.client.DialAndSendWithContext(ctx, msg)
}

type noopService struct{}

func (noopService) SlipCreated(context.Context, *slip.Slip) error { return nil }

func (noopService) DispatchReviewed(context.Context, *slip.Slip, *slip.Slip) error { return nil }

func (noopService) TestNotification(context.Context) error { return nil }
