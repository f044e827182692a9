// Package logging builds the zap logger shared by fairctl and the USSD server.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a logging severity name.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Validate checks that l is a known level.
func (l Level) Validate() error {
	switch l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return nil
	}
	return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l)
}

func (l Level) zap() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	}
	return zapcore.InfoLevel
}

// Format is the encoder used for log lines.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Validate checks that f is a known format.
func (f Format) Validate() error {
	switch f {
	case FormatConsole, FormatJSON:
		return nil
	}
	return fmt.Errorf("invalid log format: %s (must be console or json)", f)
}

// Config selects level and format.
type Config struct {
	Level  Level  `toml:"level"`
	Format Format `toml:"format"`
}

// Merge copies non-zero overlay fields.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
}

// Defaults fills unset fields.
func (c *Config) Defaults() {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
}

// Validate checks level and format.
func (c *Config) Validate() error {
	if err := c.Level.Validate(); err != nil {
		return err
	}
	return c.Format.Validate()
}

// New builds a logger writing to stderr. verbose forces debug level.
func New(cfg Config, verbose bool) (*zap.Logger, error) {
	cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if cfg.Format == FormatConsole {
		zc = zap.NewDevelopmentConfig()
		zc.Development = false
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(cfg.Level.zap())
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
