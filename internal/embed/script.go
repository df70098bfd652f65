package embed

import (
	"bytes"
	"crypto/sha256"
	stdembed "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/GregMSThompson/chat-widget/internal/models"
)

const (
	// TypingDelay is how long, in milliseconds, the greeting shows the typing
	// indicator after the panel opens.
	TypingDelay = 700
	// PanelGap is the vertical space in pixels between the bubble and the panel.
	PanelGap = 14
	// DefaultSubject is the mail subject used when an email widget has none.
	DefaultSubject = "Hello"
)

//go:embed widget.js.tmpl
var scriptTemplate string

//go:embed icons/*.svg
var iconFS stdembed.FS

//go:embed assets/chat-bg.svg
var chatBackground []byte

type ScriptOptions struct {
	BrandingLogo string
	BrandingLink string
}

// Script is the rendered embed script. It is immutable once built.
type Script struct {
	body []byte
	etag string
}

type scriptData struct {
	TypingDelay    int
	PanelGap       int
	DefaultSubject string
	Icons          string
	BrandingLogo   string
	BrandingLink   string
}

func NewScript(opts ScriptOptions) (*Script, error) {
	tmpl, err := template.New("widget.js").Parse(scriptTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse widget script: %w", err)
	}

	icons, err := Icons()
	if err != nil {
		return nil, err
	}

	data := scriptData{
		TypingDelay:    TypingDelay,
		PanelGap:       PanelGap,
		DefaultSubject: jsString(DefaultSubject),
		Icons:          jsValue(icons),
		BrandingLogo:   jsString(opts.BrandingLogo),
		BrandingLink:   jsString(opts.BrandingLink),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render widget script: %w", err)
	}

	sum := sha256.Sum256(buf.Bytes())
	return &Script{
		body: buf.Bytes(),
		etag: `"` + hex.EncodeToString(sum[:8]) + `"`,
	}, nil
}

func (s *Script) Bytes() []byte { return s.body }

func (s *Script) ETag() string { return s.etag }

// Icons returns the inline SVG markup for every platform, keyed by platform.
func Icons() (map[models.Platform]string, error) {
	icons := make(map[models.Platform]string, len(models.Platforms))
	for _, p := range models.Platforms {
		raw, err := iconFS.ReadFile(path.Join("icons", string(p)+".svg"))
		if err != nil {
			return nil, fmt.Errorf("icon %s: %w", p, err)
		}
		icons[p] = strings.TrimSpace(string(raw))
	}
	return icons, nil
}

// ChatBackground is the panel body background image.
func ChatBackground() []byte {
	return chatBackground
}

// jsValue renders v as a JavaScript literal. json.Marshal escapes <, > and &
// so the result is safe inside any script context.
func jsValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func jsString(s string) string {
	return jsValue(s)
}
