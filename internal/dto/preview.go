package dto

import "github.com/GregMSThompson/chat-widget/internal/embed"

// PreviewRequest asks how a not-yet-saved configuration would lay out and
// where a message typed into it would be sent.
type PreviewRequest struct {
	Config  WidgetInput `json:"config"`
	Message string      `json:"message"`
}

type PreviewResponse struct {
	Layout      embed.Layout `json:"layout"`
	Message     string       `json:"message"`
	RedirectURL string       `json:"redirectUrl,omitempty"`
}
