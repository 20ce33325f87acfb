// Package log wraps log/slog with a per-component attribute so every
// pipeline stage tags its records consistently.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger carries a component name attached to every record. The base logger
// is kept without the attribute so WithComponent replaces it instead of
// stacking a second one.
type Logger struct {
	*slog.Logger
	base *slog.Logger
}

// New creates a logger writing text records to stdout at the given level.
func New(level slog.Level, component string) *Logger {
	return newLogger(os.Stdout, level, component)
}

func newLogger(w io.Writer, level slog.Level, component string) *Logger {
	base := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return &Logger{
		Logger: base.With("component", component),
		base:   base,
	}
}

// WithComponent returns a logger tagged with a different component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.base.With("component", component),
		base:   l.base,
	}
}

// SetDefault installs l as the process-wide slog default.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}

// ParseLevel maps a LOG_LEVEL-style string to a slog level, defaulting to
// info for anything unrecognized.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
