package handlers

import (
	"net/http"

	"github.com/GregMSThompson/chat-widget/internal/embed"
)

// ScriptSource is the rendered embed script.
type ScriptSource interface {
	Bytes() []byte
	ETag() string
}

type scriptHandlers struct {
	Script     ScriptSource
	Production bool
}

func NewScriptHandlers(deps *Deps) *scriptHandlers {
	return &scriptHandlers{
		Script:     deps.Script,
		Production: deps.Production,
	}
}

func (h *scriptHandlers) ServeScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	if h.Production {
		w.Header().Set("Cache-Control", "public, max-age=3600, stale-while-revalidate=86400")
	} else {
		w.Header().Set("Cache-Control", "no-store, max-age=0")
	}

	etag := h.Script.ETag()
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(h.Script.Bytes())
	}
}

func (h *scriptHandlers) ServeScriptOptions(w http.ResponseWriter, r *http.Request) {
	preflight(w, r)
}

func (h *scriptHandlers) ChatBackground(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(embed.ChatBackground())
	}
}
