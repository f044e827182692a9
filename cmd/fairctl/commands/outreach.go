package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"edufair/internal/config"
	"edufair/internal/contacts"
	"edufair/internal/domain"
	"edufair/internal/outreach"
)

// email <csv> <template>: send the templated invitation to every Email.
func emailCmd(e *env) *cobra.Command {
	var dryRun bool
	var subject, from string
	cmd := &cobra.Command{
		Use:   "email <csv> <template>",
		Short: "Send a templated email to every contact with an Email",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := contacts.Open(args[0])
			if err != nil {
				return err
			}
			body, err := outreach.LoadTemplate(args[1])
			if err != nil {
				return err
			}

			var mailer domain.Mailer
			if !dryRun {
				mailer, err = e.app.Mailer()
				switch {
				case errors.Is(err, outreach.ErrNoCredentials):
					e.app.Log.Warn("smtp not configured, listing recipients only")
					mailer = nil
				case err != nil:
					return err
				}
			}

			c := outreach.Campaign{
				From:     e.app.Config.SMTP.From,
				Subject:  e.app.Config.Outreach.EmailSubject,
				Template: body,
			}
			if from != "" {
				c.From = from
			}
			if subject != "" {
				c.Subject = subject
			}
			if mailer != nil && c.From == "" {
				return errors.New("sender address required: set smtp.from, FAIR_SMTP_FROM or --from")
			}

			rep, err := outreach.Emails(cmd.Context(), rows, c, mailer, e.app.Outreach(cmd.OutOrStdout(), dryRun))
			return finish(e, cmd, "email", rep, err)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list recipients without sending")
	cmd.Flags().StringVar(&subject, "subject", "", "subject line")
	cmd.Flags().StringVar(&from, "from", "", "sender address")
	return cmd
}

// sms <csv> <message>: text every eligible number through Twilio.
func smsCmd(e *env) *cobra.Command {
	var dryRun bool
	var tc config.TwilioConfig
	cmd := &cobra.Command{
		Use:   "sms <csv> <message>",
		Short: "Send an SMS to every contact with a Kenyan Phone or WhatsApp number",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := contacts.Open(args[0])
			if err != nil {
				return err
			}
			var sender domain.SMSSender
			if !dryRun {
				sender, err = e.app.SMSSender(tc)
				if err != nil {
					if errors.Is(err, outreach.ErrNoCredentials) {
						return fmt.Errorf("twilio: %w: set --sid, --token and --from or the TWILIO_* variables", err)
					}
					return err
				}
			}
			rep, err := outreach.SMS(cmd.Context(), rows, args[1], sender, e.app.Outreach(cmd.OutOrStdout(), dryRun))
			return finish(e, cmd, "sms", rep, err)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list recipients without sending")
	cmd.Flags().StringVar(&tc.AccountSID, "sid", "", "Twilio account SID")
	cmd.Flags().StringVar(&tc.AuthToken, "token", "", "Twilio auth token")
	cmd.Flags().StringVar(&tc.FromNumber, "from", "", "Twilio sender number")
	return cmd
}

// whatsapp <csv> <message>: print wa.me links, opening them with --open.
func whatsappCmd(e *env) *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "whatsapp <csv> <message>",
		Short: "Print WhatsApp click-to-chat links for every Kenyan WhatsApp number",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := contacts.Open(args[0])
			if err != nil {
				return err
			}
			var opener outreach.Opener
			if open {
				opener = e.open
			}
			rep, err := outreach.WhatsApp(cmd.Context(), rows, args[1], opener, e.app.Outreach(cmd.OutOrStdout(), false))
			return finish(e, cmd, "whatsapp", rep, err)
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "open each link in the browser")
	return cmd
}

func finish(e *env, cmd *cobra.Command, channel string, rep outreach.Report, err error) error {
	e.app.Log.Info("outreach finished",
		zap.String("channel", channel),
		zap.Int("sent", rep.Sent),
		zap.Int("failed", rep.Failed),
		zap.Int("skipped", rep.Skipped))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Done: %s\n", rep)
	return nil
}
