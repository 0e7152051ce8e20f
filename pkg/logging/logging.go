// Package logging builds the slog.Logger used across the server: JSON
// output to stderr, with the minimum level set from the CLI's
// --info/--warn/--debug flags.
package logging

import (
	"log/slog"
	"os"
)

// Level names the three severities the CLI exposes. Error-level
// entries are always emitted regardless of this setting.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
)

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// New builds a JSON slog.Logger writing to stderr at the given
// minimum level, tagged with the service name.
func New(level Level, service string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level.slogLevel(),
	})
	return slog.New(handler).With("service", service)
}
