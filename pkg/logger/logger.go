// Package logger builds slog loggers with request-scoped attributes and an
// optional Sentry fan-out.
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithExtractors(middlewares.RequestIDExtractor()),
//		logger.WithSentry(cfg.Sentry),
//	)
//
// Without a Sentry DSN the logger writes to its output only, so the same
// wiring works in development and production.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// ErrInvalidLevel is returned by ParseLevel for unknown level names.
var ErrInvalidLevel = errors.New("logger: invalid level")

// Config is the environment-driven logger configuration.
type Config struct {
	Level  string       `env:"MNES_LOG_LEVEL" envDefault:"info"`
	Format string       `env:"MNES_LOG_FORMAT" envDefault:"json"` // json or text
	Sentry SentryConfig
}

// SentryConfig holds Sentry integration settings. An empty DSN disables Sentry.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel selects what Sentry stores as logs: warn and above, or errors only.
	MinLevel slog.Level
}

type options struct {
	level      slog.Level
	text       bool
	out        io.Writer
	extractors []ContextExtractor
	sentry     SentryConfig
}

// Option configures New.
type Option func(*options)

// WithLevel sets the minimum level. Default: info.
func WithLevel(l slog.Level) Option {
	return func(o *options) {
		o.level = l
	}
}

// WithText switches from JSON to the human-readable text handler.
func WithText() Option {
	return func(o *options) {
		o.text = true
	}
}

// WithOutput sets the destination. Default: os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.out = w
		}
	}
}

// WithExtractors adds context extractors applied on every log call.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// WithSentry forwards warnings and errors to Sentry when cfg.DSN is set.
func WithSentry(cfg SentryConfig) Option {
	return func(o *options) {
		o.sentry = cfg
	}
}

// New builds a logger.
func New(opts ...Option) *slog.Logger {
	o := &options{level: slog.LevelInfo, out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	hopts := &slog.HandlerOptions{Level: o.level}
	var handler slog.Handler = slog.NewJSONHandler(o.out, hopts)
	if o.text {
		handler = slog.NewTextHandler(o.out, hopts)
	}

	if sh := newSentryHandler(o.sentry, handler); sh != nil {
		handler = newMultiHandler(handler, sh)
	}

	return slog.New(NewLogHandlerDecorator(handler, o.extractors...))
}

// FromConfig builds a logger from cfg.
func FromConfig(cfg Config, extractors ...ContextExtractor) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithLevel(level),
		WithExtractors(extractors...),
		WithSentry(cfg.Sentry),
	}
	switch strings.ToLower(cfg.Format) {
	case "", "json":
	case "text":
		opts = append(opts, WithText())
	default:
		return nil, fmt.Errorf("logger: unknown format %q", cfg.Format)
	}
	return New(opts...), nil
}

// ParseLevel accepts debug, info, warn/warning and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// newSentryHandler initializes the Sentry SDK and returns its slog handler,
// or nil when Sentry is disabled or fails to start.
func newSentryHandler(cfg SentryConfig, fallback slog.Handler) slog.Handler {
	if cfg.DSN == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(fallback).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return nil
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())
}
