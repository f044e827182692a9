package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"edufair/internal/config"
	"edufair/internal/domain"
	"edufair/internal/logging"
	"edufair/internal/secrets"
)

// App is the configured runtime shared by commands.
type App struct {
	Config  *config.Config
	Log     *zap.Logger
	Secrets domain.SecretStore // nil without a passphrase
}

// New loads configuration and builds the logger and keystore.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, err := logging.New(cfg.Logging, opts.Verbose)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Log: log}
	if opts.Passphrase != "" {
		path := opts.SecretsPath
		if path == "" {
			path = DefaultSecretsPath()
		}
		ks, err := secrets.Open(path, opts.Passphrase)
		if err != nil {
			return nil, err
		}
		a.Secrets = ks
	}
	return a, nil
}

// Close flushes the logger.
func (a *App) Close() {
	_ = a.Log.Sync()
}

// secret returns value when set, otherwise the keystore entry for key.
func (a *App) secret(value, key string) (string, error) {
	if value != "" || a.Secrets == nil {
		return value, nil
	}
	v, ok, err := a.Secrets.Get(key)
	if err != nil {
		if errors.Is(err, secrets.ErrWrongPassphrase) {
			return "", err
		}
		return "", fmt.Errorf("keystore %s: %w", key, err)
	}
	if !ok {
		return "", nil
	}
	a.Log.Debug("credential read from keystore", zap.String("key", key))
	return v, nil
}
