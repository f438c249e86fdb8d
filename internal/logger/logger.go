// Package logger builds the zerolog loggers used across the CLI.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const DefaultLogLevel = "info"

// Config holds logger configuration.
type Config struct {
	output       io.Writer
	level        zerolog.Level
	excludeParts []string
	console      bool
}

// Option configures the logger.
type Option func(*Config)

// WithLevel sets the logger level by name (debug, info, warn, error).
func WithLevel(level string) Option {
	return func(cfg *Config) {
		cfg.level = ParseLevel(level)
	}
}

// WithConsoleWriter toggles the human-readable console writer.
func WithConsoleWriter(console bool) Option {
	return func(cfg *Config) {
		cfg.console = console
	}
}

// WithOutput sets the output writer.
func WithOutput(output io.Writer) Option {
	return func(cfg *Config) {
		cfg.output = output
	}
}

// New creates a logger. Defaults to info level, console format, stderr.
func New(opts ...Option) *zerolog.Logger {
	cfg := &Config{
		output:       os.Stderr,
		level:        zerolog.InfoLevel,
		excludeParts: []string{zerolog.TimestampFieldName},
		console:      true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	l := zerolog.New(cfg.output).Level(cfg.level).With().Logger()
	if cfg.console {
		l = l.Output(zerolog.ConsoleWriter{
			Out:          cfg.output,
			PartsExclude: cfg.excludeParts,
		})
	}
	return &l
}

// Nop returns a logger that discards everything.
func Nop() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// OrNop returns l, or a nop logger when l is nil.
func OrNop(l *zerolog.Logger) *zerolog.Logger {
	if l == nil {
		return Nop()
	}
	return l
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
