package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"edufair/internal/config"
	"edufair/internal/domain"
	"edufair/internal/outreach"
	"edufair/internal/sheets"
	"edufair/internal/store"
	"edufair/internal/ussd"
)

// Event merges the configured event over the built-in one.
func (a *App) Event() ussd.Event {
	e := ussd.DefaultEvent()
	c := a.Config.Event
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&e.Name, c.Name)
	set(&e.Date, c.Date)
	set(&e.Hours, c.Hours)
	set(&e.Venue, c.Venue)
	set(&e.Code, c.USSDCode)
	set(&e.Hotline, c.Hotline)
	set(&e.IDPrefix, c.IDPrefix)
	if len(c.Highlights) > 0 {
		e.Highlights = c.Highlights
	}
	if len(c.Organiser) > 0 {
		e.Organiser = c.Organiser
	}
	return e
}

// Schools returns the configured school list, or the built-in one.
func (a *App) Schools() ([]domain.School, error) {
	if a.Config.USSD.SchoolsFile == "" {
		return ussd.DefaultSchools(), nil
	}
	return ussd.LoadSchools(a.Config.USSD.SchoolsFile)
}

// Outreach returns bulk-run options writing progress to out.
func (a *App) Outreach(out io.Writer, dryRun bool) outreach.Options {
	return outreach.Options{
		Out:    out,
		Log:    a.Log,
		Prefix: a.Config.Outreach.CountryPrefix,
		DryRun: dryRun,
	}
}

// SMSSender builds a Twilio sender. Non-empty fields of override win over
// config; a missing token falls back to the keystore.
func (a *App) SMSSender(override config.TwilioConfig) (domain.SMSSender, error) {
	c := a.Config.Twilio
	if override.AccountSID != "" {
		c.AccountSID = override.AccountSID
	}
	if override.AuthToken != "" {
		c.AuthToken = override.AuthToken
	}
	if override.FromNumber != "" {
		c.FromNumber = override.FromNumber
	}
	token, err := a.secret(c.AuthToken, SecretTwilioToken)
	if err != nil {
		return nil, err
	}
	return outreach.NewTwilio(c.AccountSID, token, c.FromNumber)
}

// Mailer builds the SMTP mailer. It returns outreach.ErrNoCredentials when no
// host is configured.
func (a *App) Mailer() (domain.Mailer, error) {
	c := a.Config.SMTP
	password, err := a.secret(c.Password, SecretSMTPPassword)
	if err != nil {
		return nil, err
	}
	return outreach.NewSMTP(outreach.SMTPConfig{
		Host:     c.Host,
		Port:     c.Port,
		Username: c.Username,
		Password: password,
	})
}

// Sheets builds a Google client from credsPath, or the configured file.
func (a *App) Sheets(ctx context.Context, credsPath string) (sheets.Client, error) {
	if credsPath == "" {
		credsPath = a.Config.Sheets.CredentialsFile
	}
	if credsPath == "" {
		return nil, fmt.Errorf("sheets: %w: set GOOGLE_APPLICATION_CREDENTIALS or --credentials", outreach.ErrNoCredentials)
	}
	return sheets.NewGoogle(ctx, credsPath)
}

// Store opens the registration store at url, or the configured one.
func (a *App) Store(ctx context.Context, url string) (domain.RegistrationStore, error) {
	if url == "" {
		url = a.Config.Database.URL
	}
	s, err := store.Open(ctx, url)
	if err != nil {
		return nil, err
	}
	a.Log.Debug("registration store opened", zap.String("url", redact(url)))
	return s, nil
}

// USSD builds the registration service on st. Confirmation SMS are sent only
// when ussd.send_sms is set and Twilio is configured.
func (a *App) USSD(st domain.RegistrationStore) (*ussd.Service, error) {
	schools, err := a.Schools()
	if err != nil {
		return nil, err
	}

	var sms domain.SMSSender
	if a.Config.USSD.SendSMS {
		sms, err = a.SMSSender(config.TwilioConfig{})
		if err != nil {
			return nil, fmt.Errorf("confirmation sms: %w", err)
		}
	}

	return ussd.New(ussd.Config{
		Event:          a.Event(),
		Schools:        schools,
		SessionTimeout: a.Config.USSD.SessionTimeoutDuration(),
		MaxAttempts:    a.Config.USSD.MaxAttempts,
	}, st, sms, a.Log.Named("ussd")), nil
}
