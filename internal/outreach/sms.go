package outreach

import (
	"context"

	"go.uber.org/zap"

	"edufair/internal/contacts"
	"edufair/internal/domain"
)

// SMS texts message to every eligible Phone (or WhatsApp) number.
func SMS(ctx context.Context, rows []contacts.Row, message string, sender domain.SMSSender, opts Options) (Report, error) {
	opts = opts.withDefaults()
	var rep Report
	for _, row := range rows {
		if err := cancelled(ctx); err != nil {
			return rep, err
		}
		phone := row.First("Phone", "WhatsApp")
		name := row.Name(contacts.DefaultName)
		if !opts.eligible(phone) {
			rep.Skipped++
			continue
		}
		if opts.DryRun {
			opts.printf("Would send SMS to %s at %s\n", name, phone)
			rep.Sent++
			continue
		}
		if err := sender.SendSMS(ctx, phone, message); err != nil {
			opts.printf("Failed to send to %s: %v\n", name, err)
			opts.Log.Error("send sms", zap.String("contact", name), zap.String("phone", phone), zap.Error(err))
			rep.Failed++
			continue
		}
		opts.printf("SMS sent to %s at %s\n", name, phone)
		opts.Log.Debug("sms sent", zap.String("contact", name), zap.String("phone", phone))
		rep.Sent++
	}
	return rep, nil
}
