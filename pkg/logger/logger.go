package logger

import (
	"log/slog"
	"strings"
)

// HandlerFactory builds a slog handler for a minimum level.
type HandlerFactory func(level slog.Level) slog.Handler

func New(level string, handler HandlerFactory) *slog.Logger {
	h := handler(ParseLevel(level))
	return slog.New(h)
}

// ForFormat picks the handler factory for a LOGFORMAT value.
func ForFormat(format string) HandlerFactory {
	switch strings.ToLower(format) {
	case "console", "text":
		return NewConsoleHandler
	default:
		return NewCloudRunHandler
	}
}

// ---- Helpers ----

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
