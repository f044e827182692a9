package outreach

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"edufair/internal/domain"
)

// SMTPConfig describes the submission server.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPMailer submits mail over STARTTLS with PLAIN auth.
type SMTPMailer struct {
	client *mail.Client
}

// NewSMTP builds a mailer. Port defaults to 587.
func NewSMTP(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, ErrNoCredentials
	}
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	c, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{client: c}, nil
}

// Send implements domain.Mailer.
func (m *SMTPMailer) Send(ctx context.Context, e domain.Email) error {
	msg := mail.NewMsg()
	if err := msg.From(e.From); err != nil {
		return fmt.Errorf("from %q: %w", e.From, err)
	}
	if err := msg.To(e.To); err != nil {
		return fmt.Errorf("to %q: %w", e.To, err)
	}
	msg.Subject(e.Subject)
	msg.SetBodyString(mail.TypeTextPlain, e.Body)
	return m.client.DialAndSendWithContext(ctx, msg)
}

var _ domain.Mailer = (*SMTPMailer)(nil)
