package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/chat-widget/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	WidgetSvc       WidgetService
	UploadSvc       UploadService
	Script          ScriptSource
	Production      bool
}
