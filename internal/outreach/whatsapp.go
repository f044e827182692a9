package outreach

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"edufair/internal/contacts"
)

// Link builds a wa.me click-to-chat URL. The leading + of the number is
// dropped and the message is percent-encoded with spaces as %20.
func Link(number, message string) string {
	digits := strings.TrimPrefix(strings.TrimSpace(number), "+")
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + text
}

// Opener launches a link, usually in the desktop browser.
type Opener func(link string) error

// WhatsApp prints a click-to-chat link for every eligible WhatsApp number. When
// open is non-nil each link is also handed to it.
func WhatsApp(ctx context.Context, rows []contacts.Row, message string, open Opener, opts Options) (Report, error) {
	opts = opts.withDefaults()
	var rep Report
	for _, row := range rows {
		if err := cancelled(ctx); err != nil {
			return rep, err
		}
		number := row.Get("WhatsApp")
		name := row.Name(contacts.DefaultName)
		if !opts.eligible(number) {
			rep.Skipped++
			continue
		}
		link := Link(number, message)
		opts.printf("Messaging %s: %s\n", name, link)
		if open != nil && !opts.DryRun {
			if err := open(link); err != nil {
				opts.Log.Warn("open whatsapp link", zap.String("contact", name), zap.Error(err))
				rep.Failed++
				continue
			}
		}
		rep.Sent++
	}
	return rep, nil
}
