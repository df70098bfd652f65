package logger

import (
	"io"
	"log/slog"
)

// NewTestHandler writes text records to out, or nowhere when out is nil.
func NewTestHandler(out io.Writer, level slog.Level) slog.Handler {
	if out == nil {
		out = io.Discard
	}
	return slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
}
