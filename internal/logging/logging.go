// Package logging provides zerolog construction helpers shared by all
// gitlab-toolbox components: a configured root logger, component-scoped child
// loggers, and per-invocation trace IDs for correlating API calls.
package logging

import (
	"io"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Config controls how the root logger is built.
type Config struct {
	// Level is a zerolog level name ("debug", "info", "warn", ...).
	// Unparseable values fall back to "info".
	Level string

	// Console enables the human-readable console writer. When false, raw
	// JSON lines are emitted instead.
	Console bool
}

// New builds the root logger writing to w according to cfg.
func New(w io.Writer, cfg Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// NewTraceID generates a ULID identifying a single CLI invocation. Every API
// request made during the invocation is logged with this ID.
func NewTraceID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0) //nolint:gosec // IDs, not secrets
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// WithTraceID returns logger with the trace_id field attached.
func WithTraceID(logger zerolog.Logger, traceID string) zerolog.Logger {
	return logger.With().Str("trace_id", traceID).Logger()
}
