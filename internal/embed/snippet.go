package embed

import (
	"html"
	"strings"
)

// Snippet is the tag a site owner pastes into their page.
func Snippet(publicURL, widgetID string) string {
	base := strings.TrimRight(publicURL, "/")
	return `<script src="` + html.EscapeString(base) + `/widget.js" data-widget-id="` +
		html.EscapeString(widgetID) + `" async></script>`
}
