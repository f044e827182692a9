package app

import (
	"os"
	"path/filepath"
)

// Options holds runtime wiring options for building the app.
type Options struct {
	ConfigPath  string // fair.toml path; empty reads ./fair.toml when present
	Verbose     bool   // force debug logging
	SecretsPath string // sealed keystore; empty uses DefaultSecretsPath
	Passphrase  string // keystore passphrase; empty disables the keystore
}

// Keystore keys consulted when a credential is not configured elsewhere.
const (
	SecretTwilioToken  = "twilio.auth_token"
	SecretSMTPPassword = "smtp.password"
)

// DefaultSecretsPath is $HOME/.edufair/secrets.sealed.
func DefaultSecretsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".edufair", "secrets.sealed")
}
