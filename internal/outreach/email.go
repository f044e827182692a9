package outreach

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"edufair/internal/contacts"
	"edufair/internal/domain"
)

// DefaultSubject is used when no subject is configured.
const DefaultSubject = "Invitation to Kenya Islamic Education Fair"

// Campaign is one templated email run.
type Campaign struct {
	From     string
	Subject  string
	Template string // body; every {name} is replaced with the contact name
}

// LoadTemplate reads a campaign body from path.
func LoadTemplate(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	return string(b), nil
}

// Render fills the template for one contact.
func (c Campaign) Render(name string) string {
	return strings.ReplaceAll(c.Template, "{name}", name)
}

// Emails sends the campaign to every row with an Email. A nil mailer or
// opts.DryRun prints the recipients without sending.
func Emails(ctx context.Context, rows []contacts.Row, c Campaign, mailer domain.Mailer, opts Options) (Report, error) {
	opts = opts.withDefaults()
	if c.Subject == "" {
		c.Subject = DefaultSubject
	}
	var rep Report
	for _, row := range rows {
		if err := cancelled(ctx); err != nil {
			return rep, err
		}
		addr := row.Get("Email")
		name := row.Name(contacts.DefaultName)
		if addr == "" {
			rep.Skipped++
			continue
		}
		opts.printf("Sending email to %s at %s\n", name, addr)
		if mailer == nil || opts.DryRun {
			rep.Sent++
			continue
		}
		msg := domain.Email{From: c.From, To: addr, Subject: c.Subject, Body: c.Render(name)}
		if err := mailer.Send(ctx, msg); err != nil {
			opts.printf("Failed to send to %s: %v\n", name, err)
			opts.Log.Error("send email", zap.String("contact", name), zap.String("email", addr), zap.Error(err))
			rep.Failed++
			continue
		}
		rep.Sent++
	}
	return rep, nil
}
