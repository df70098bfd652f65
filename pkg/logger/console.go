package logger

import (
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// NewConsoleHandler returns a human readable handler for local development.
// charmbracelet/log levels share slog's numeric values.
func NewConsoleHandler(level slog.Level) slog.Handler {
	return charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           charmlog.Level(level),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Prefix:          "widgets",
	})
}
