package domain

import "context"

// RegistrationStore persists confirmed registrations.
type RegistrationStore interface {
	Save(ctx context.Context, r Registration) error
	Get(ctx context.Context, id string) (Registration, error)
	// List returns registrations newest first.
	List(ctx context.Context) ([]Registration, error)
	Close() error
}

// SMSSender delivers a text message to a single number.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// Mailer delivers one email.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// SecretStore resolves named credentials.
type SecretStore interface {
	Get(key string) (string, bool, error)
}
