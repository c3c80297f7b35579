package logger

import (
	"log/slog"
	"strings"
)

// New builds a logger from a textual level ("debug", "info", "warn", "error")
// and a handler constructor such as NewCloudRunHandler or NewTestHandler.
func New(level string, handler func(level slog.Level) slog.Handler) *slog.Logger {
	return slog.New(handler(ParseLevel(level)))
}

// ParseLevel falls back to info for empty or unknown values.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
