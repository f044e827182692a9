// Package config loads fairctl and USSD server settings from TOML with an
// optional per-environment overlay and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"edufair/internal/logging"
)

const (
	// BaseConfigFile is read from the working directory when no path is given.
	BaseConfigFile = "fair.toml"

	// OverlayConfigPattern names the overlay next to the base file.
	OverlayConfigPattern = "fair.%s.toml"

	// EnvFairEnv selects the overlay.
	EnvFairEnv = "FAIR_ENV"
)

// Config is the root configuration.
type Config struct {
	Event    EventConfig    `toml:"event"`
	Outreach OutreachConfig `toml:"outreach"`
	SMTP     SMTPConfig     `toml:"smtp"`
	Twilio   TwilioConfig   `toml:"twilio"`
	Sheets   SheetsConfig   `toml:"sheets"`
	USSD     USSDConfig     `toml:"ussd"`
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logging  logging.Config `toml:"logging"`
}

// EventConfig overrides the built-in event description. Empty fields keep the
// built-in value.
type EventConfig struct {
	Name       string   `toml:"name"`
	Date       string   `toml:"date"`
	Hours      string   `toml:"hours"`
	Venue      string   `toml:"venue"`
	USSDCode   string   `toml:"ussd_code"`
	Hotline    string   `toml:"hotline"`
	IDPrefix   string   `toml:"id_prefix"`
	Highlights []string `toml:"highlights"`
	Organiser  []string `toml:"organiser"`
}

// OutreachConfig holds settings shared by the CSV commands.
type OutreachConfig struct {
	CountryPrefix string `toml:"country_prefix"`
	EmailSubject  string `toml:"email_subject"`
	MapTitle      string `toml:"map_title"`
	ScheduleStart string `toml:"schedule_start"` // e.g. "11:00"
	SlotLength    string `toml:"slot_length"`
}

type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

type TwilioConfig struct {
	AccountSID string `toml:"account_sid"`
	AuthToken  string `toml:"auth_token"`
	FromNumber string `toml:"from_number"`
}

type SheetsConfig struct {
	CredentialsFile string   `toml:"credentials_file"`
	ShareWith       []string `toml:"share_with"`
}

type USSDConfig struct {
	SessionTimeout string `toml:"session_timeout"`
	MaxAttempts    int    `toml:"max_attempts"`
	SchoolsFile    string `toml:"schools_file"`
	SendSMS        bool   `toml:"send_sms"`
}

type ServerConfig struct {
	Port            string `toml:"port"`
	ReadTimeout     string `toml:"read_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL string `toml:"url"`
}

// SessionTimeoutDuration parses the USSD session timeout.
func (c *USSDConfig) SessionTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.SessionTimeout)
	return d
}

// ReadTimeoutDuration parses the HTTP read timeout.
func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	return d
}

// ShutdownTimeoutDuration parses the graceful shutdown timeout.
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Addr is the listen address.
func (c *ServerConfig) Addr() string { return ":" + c.Port }

// SlotLengthDuration parses the schedule slot length.
func (c *OutreachConfig) SlotLengthDuration() time.Duration {
	d, _ := time.ParseDuration(c.SlotLength)
	return d
}

// ScheduleStartOffset parses ScheduleStart ("HH:MM") as an offset from midnight.
func (c *OutreachConfig) ScheduleStartOffset() (time.Duration, error) {
	t, err := time.Parse("15:04", c.ScheduleStart)
	if err != nil {
		return 0, fmt.Errorf("invalid schedule_start %q: %w", c.ScheduleStart, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// Load reads path (BaseConfigFile when empty) and the overlay selected by
// FAIR_ENV. A missing default file yields an empty Config; a missing explicit
// path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = BaseConfigFile
	}
	cfg, err := load(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		cfg, err = &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	if overlay := overlayPath(path); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}
	return cfg, nil
}

// Finalize applies defaults, then environment overrides, then validates.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay that differ from zero values.
func (c *Config) Merge(o *Config) {
	mergeStr(&c.Event.Name, o.Event.Name)
	mergeStr(&c.Event.Date, o.Event.Date)
	mergeStr(&c.Event.Hours, o.Event.Hours)
	mergeStr(&c.Event.Venue, o.Event.Venue)
	mergeStr(&c.Event.USSDCode, o.Event.USSDCode)
	mergeStr(&c.Event.Hotline, o.Event.Hotline)
	mergeStr(&c.Event.IDPrefix, o.Event.IDPrefix)
	if len(o.Event.Highlights) > 0 {
		c.Event.Highlights = o.Event.Highlights
	}
	if len(o.Event.Organiser) > 0 {
		c.Event.Organiser = o.Event.Organiser
	}

	mergeStr(&c.Outreach.CountryPrefix, o.Outreach.CountryPrefix)
	mergeStr(&c.Outreach.EmailSubject, o.Outreach.EmailSubject)
	mergeStr(&c.Outreach.MapTitle, o.Outreach.MapTitle)
	mergeStr(&c.Outreach.ScheduleStart, o.Outreach.ScheduleStart)
	mergeStr(&c.Outreach.SlotLength, o.Outreach.SlotLength)

	mergeStr(&c.SMTP.Host, o.SMTP.Host)
	if o.SMTP.Port != 0 {
		c.SMTP.Port = o.SMTP.Port
	}
	mergeStr(&c.SMTP.Username, o.SMTP.Username)
	mergeStr(&c.SMTP.Password, o.SMTP.Password)
	mergeStr(&c.SMTP.From, o.SMTP.From)

	mergeStr(&c.Twilio.AccountSID, o.Twilio.AccountSID)
	mergeStr(&c.Twilio.AuthToken, o.Twilio.AuthToken)
	mergeStr(&c.Twilio.FromNumber, o.Twilio.FromNumber)

	mergeStr(&c.Sheets.CredentialsFile, o.Sheets.CredentialsFile)
	if len(o.Sheets.ShareWith) > 0 {
		c.Sheets.ShareWith = o.Sheets.ShareWith
	}

	mergeStr(&c.USSD.SessionTimeout, o.USSD.SessionTimeout)
	if o.USSD.MaxAttempts != 0 {
		c.USSD.MaxAttempts = o.USSD.MaxAttempts
	}
	mergeStr(&c.USSD.SchoolsFile, o.USSD.SchoolsFile)
	if o.USSD.SendSMS {
		c.USSD.SendSMS = true
	}

	mergeStr(&c.Server.Port, o.Server.Port)
	mergeStr(&c.Server.ReadTimeout, o.Server.ReadTimeout)
	mergeStr(&c.Server.ShutdownTimeout, o.Server.ShutdownTimeout)

	mergeStr(&c.Database.URL, o.Database.URL)
	c.Logging.Merge(&o.Logging)
}

func (c *Config) loadDefaults() {
	defStr(&c.Outreach.CountryPrefix, "+254")
	defStr(&c.Outreach.ScheduleStart, "11:00")
	defStr(&c.Outreach.SlotLength, "1h")
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	defStr(&c.USSD.SessionTimeout, "5m")
	if c.USSD.MaxAttempts == 0 {
		c.USSD.MaxAttempts = 3
	}
	defStr(&c.Server.Port, "8080")
	defStr(&c.Server.ReadTimeout, "10s")
	defStr(&c.Server.ShutdownTimeout, "15s")
	defStr(&c.Database.URL, "sqlite:./registrations.db")
	c.Logging.Defaults()
}

// Environment variable names.
const (
	EnvSMTPHost        = "FAIR_SMTP_HOST"
	EnvSMTPPort        = "FAIR_SMTP_PORT"
	EnvSMTPUsername    = "FAIR_SMTP_USERNAME"
	EnvSMTPPassword    = "FAIR_SMTP_PASSWORD"
	EnvSMTPFrom        = "FAIR_SMTP_FROM"
	EnvTwilioSID       = "TWILIO_ACCOUNT_SID"
	EnvTwilioToken     = "TWILIO_AUTH_TOKEN"
	EnvTwilioFrom      = "TWILIO_FROM_NUMBER"
	EnvGoogleCreds     = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvDatabaseURL     = "DATABASE_URL"
	EnvPort            = "PORT"
	EnvLogLevel        = "FAIR_LOG_LEVEL"
	EnvLogFormat       = "FAIR_LOG_FORMAT"
	EnvSessionTimeout  = "FAIR_USSD_SESSION_TIMEOUT"
	EnvShutdownTimeout = "FAIR_SHUTDOWN_TIMEOUT"
)

func (c *Config) loadEnv() {
	envStr(&c.SMTP.Host, EnvSMTPHost)
	if v := os.Getenv(EnvSMTPPort); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.SMTP.Port = p
		}
	}
	envStr(&c.SMTP.Username, EnvSMTPUsername)
	envStr(&c.SMTP.Password, EnvSMTPPassword)
	envStr(&c.SMTP.From, EnvSMTPFrom)
	envStr(&c.Twilio.AccountSID, EnvTwilioSID)
	envStr(&c.Twilio.AuthToken, EnvTwilioToken)
	envStr(&c.Twilio.FromNumber, EnvTwilioFrom)
	envStr(&c.Sheets.CredentialsFile, EnvGoogleCreds)
	envStr(&c.Database.URL, EnvDatabaseURL)
	envStr(&c.Server.Port, EnvPort)
	envStr(&c.USSD.SessionTimeout, EnvSessionTimeout)
	envStr(&c.Server.ShutdownTimeout, EnvShutdownTimeout)
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = logging.Level(strings.ToLower(v))
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = logging.Format(strings.ToLower(v))
	}
}

func (c *Config) validate() error {
	for name, v := range map[string]string{
		"ussd.session_timeout":    c.USSD.SessionTimeout,
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"outreach.slot_length":    c.Outreach.SlotLength,
	} {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid %s: must be positive", name)
		}
	}
	if _, err := c.Outreach.ScheduleStartOffset(); err != nil {
		return fmt.Errorf("outreach: %w", err)
	}
	if c.USSD.MaxAttempts < 1 {
		return fmt.Errorf("ussd: max_attempts must be at least 1")
	}
	if p, err := strconv.Atoi(c.Server.Port); err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("server: invalid port %q", c.Server.Port)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

func overlayPath(base string) string {
	env := os.Getenv(EnvFairEnv)
	if env == "" {
		return ""
	}
	p := filepath.Join(filepath.Dir(base), fmt.Sprintf(OverlayConfigPattern, env))
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func mergeStr(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func defStr(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func envStr(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}
