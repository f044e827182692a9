package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edufair/internal/config"
	"edufair/internal/logging"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_MissingDefaultIsEmpty(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Finalize())

	assert.Equal(t, "+254", cfg.Outreach.CountryPrefix)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 5*time.Minute, cfg.USSD.SessionTimeoutDuration())
	assert.Equal(t, 3, cfg.USSD.MaxAttempts)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, "sqlite:./registrations.db", cfg.Database.URL)
	assert.Equal(t, logging.LevelInfo, cfg.Logging.Level)

	start, err := cfg.Outreach.ScheduleStartOffset()
	require.NoError(t, err)
	assert.Equal(t, 11*time.Hour, start)
}

func TestLoad_MissingExplicitFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_OverlayAndEnv(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "fair.toml", `
[event]
name = "Mombasa Education Fair"
highlights = ["Scholarships"]

[smtp]
host = "smtp.example.org"
from = "fair@example.org"

[ussd]
max_attempts = 5

[logging]
level = "debug"
`)
	writeFile(t, dir, "fair.prod.toml", `
[smtp]
host = "smtp.prod.example.org"

[logging]
format = "json"
`)
	t.Setenv(config.EnvFairEnv, "prod")
	t.Setenv(config.EnvDatabaseURL, "postgres://fair@db/fair")
	t.Setenv(config.EnvPort, "9090")
	t.Setenv(config.EnvTwilioToken, "secret")

	cfg, err := config.Load(base)
	require.NoError(t, err)
	require.NoError(t, cfg.Finalize())

	assert.Equal(t, "Mombasa Education Fair", cfg.Event.Name)
	assert.Equal(t, []string{"Scholarships"}, cfg.Event.Highlights)
	assert.Equal(t, "smtp.prod.example.org", cfg.SMTP.Host)
	assert.Equal(t, "fair@example.org", cfg.SMTP.From)
	assert.Equal(t, 5, cfg.USSD.MaxAttempts)
	assert.Equal(t, logging.LevelDebug, cfg.Logging.Level)
	assert.Equal(t, logging.FormatJSON, cfg.Logging.Format)
	assert.Equal(t, "postgres://fair@db/fair", cfg.Database.URL)
	assert.Equal(t, ":9090", cfg.Server.Addr())
	assert.Equal(t, "secret", cfg.Twilio.AuthToken)
}

func TestFinalize_Validation(t *testing.T) {
	cases := map[string]func(*config.Config){
		"bad timeout":  func(c *config.Config) { c.USSD.SessionTimeout = "soon" },
		"bad port":     func(c *config.Config) { c.Server.Port = "http" },
		"bad start":    func(c *config.Config) { c.Outreach.ScheduleStart = "noon" },
		"bad level":    func(c *config.Config) { c.Logging.Level = "loud" },
		"bad attempts": func(c *config.Config) { c.USSD.MaxAttempts = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := &config.Config{}
			mutate(cfg)
			assert.Error(t, cfg.Finalize())
		})
	}
}

func TestLoad_ParseError(t *testing.T) {
	p := writeFile(t, t.TempDir(), "fair.toml", "[smtp\nhost=")
	_, err := config.Load(p)
	assert.ErrorContains(t, err, "parse config")
}
