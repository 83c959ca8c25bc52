package mnes

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/mnes/pkg/history"
	"github.com/dmitrymomot/mnes/pkg/usage"
)

// DefaultMaxLength is the longest accepted name, in codepoints after normalization.
const DefaultMaxLength = 50

// Option configures an Encoder.
type Option func(*Encoder)

// WithTracker sets the usage tracker updated after each successful encoding.
// Default: a fresh tracker owned by the encoder.
func WithTracker(t *usage.Tracker) Option {
	return func(e *Encoder) {
		if t != nil {
			e.tracker = t
		}
	}
}

// WithHistory sets where successful encodings are recorded.
// Default: an in-memory history.Log.
func WithHistory(s history.Store) Option {
	return func(e *Encoder) {
		if s != nil {
			e.history = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Encoder) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock overrides time.Now for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Encoder) {
		if now != nil {
			e.now = now
		}
	}
}

// WithMaxLength sets the input length limit in codepoints. 0 disables the limit.
func WithMaxLength(n int) Option {
	return func(e *Encoder) {
		if n >= 0 {
			e.maxLength = n
		}
	}
}

// WithStrictScript rejects input containing anything other than Myanmar script.
func WithStrictScript() Option {
	return func(e *Encoder) {
		e.strict = true
	}
}
