package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestServeScriptProduction(t *testing.T) {
	h := NewScriptHandlers(&Deps{Script: stubScript{body: "(()=>{})();", etag: `"abc"`}, Production: true})

	rr := serve(h.ServeScript, httptest.NewRequest(http.MethodGet, "/widget.js", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/javascript; charset=utf-8" {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rr.Header().Get("Cache-Control"); got != "public, max-age=3600, stale-while-revalidate=86400" {
		t.Fatalf("unexpected cache control %q", got)
	}
	if rr.Body.String() != "(()=>{})();" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}

func TestServeScriptDevelopment(t *testing.T) {
	h := NewScriptHandlers(&Deps{Script: stubScript{body: "x", etag: `"abc"`}})

	rr := serve(h.ServeScript, httptest.NewRequest(http.MethodGet, "/widget.js", nil))

	if got := rr.Header().Get("Cache-Control"); got != "no-store, max-age=0" {
		t.Fatalf("unexpected cache control %q", got)
	}
}

func TestServeScriptNotModified(t *testing.T) {
	h := NewScriptHandlers(&Deps{Script: stubScript{body: "x", etag: `"abc"`}, Production: true})

	req := httptest.NewRequest(http.MethodGet, "/widget.js", nil)
	req.Header.Set("If-None-Match", `"abc"`)
	rr := serve(h.ServeScript, req)

	if rr.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Fatal("304 must not carry a body")
	}
}

func TestChatBackground(t *testing.T) {
	h := NewScriptHandlers(&Deps{Script: stubScript{}})

	rr := serve(h.ChatBackground, httptest.NewRequest(http.MethodGet, "/chat-bg.svg", nil))

	if got := rr.Header().Get("Content-Type"); got != "image/svg+xml" {
		t.Fatalf("unexpected content type %q", got)
	}
	if !strings.HasPrefix(rr.Body.String(), "<svg") {
		t.Fatal("expected svg body")
	}
}
