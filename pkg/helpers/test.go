package helpers

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/GregMSThompson/chat-widget/pkg/logger"
)

// TestCtx returns a context carrying a logger that discards output.
func TestCtx() context.Context {
	log := slog.New(logger.NewTestHandler(nil, slog.LevelInfo))
	return logger.ToContext(context.Background(), log)
}

// TestCtxCapture is TestCtx with the log output kept, for tests that assert
// on warnings.
func TestCtxCapture() (context.Context, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	log := slog.New(logger.NewTestHandler(buf, slog.LevelDebug))
	return logger.ToContext(context.Background(), log), buf
}
