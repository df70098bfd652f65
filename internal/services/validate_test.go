package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/GregMSThompson/chat-widget/internal/dto"
	"github.com/GregMSThompson/chat-widget/internal/errs"
	"github.com/GregMSThompson/chat-widget/internal/models"
	"github.com/GregMSThompson/chat-widget/pkg/helpers"
)

func issuesOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return ve.Issues
}

func TestValidateWidgetInputAcceptsEveryPlatform(t *testing.T) {
	for _, p := range models.Platforms {
		in := validInput(p)
		if err := validateWidgetInput(&in); err != nil {
			t.Errorf("%s: unexpected error %v", p, err)
		}
	}
}

func TestValidateWidgetInputRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.WidgetInput)
		path   string
		reason string
	}{
		{"blank name", func(in *dto.WidgetInput) { in.Name = "   " }, "name", "required"},
		{"long name", func(in *dto.WidgetInput) { in.Name = strings.Repeat("a", 81) }, "name", "must be at most 80 characters"},
		{"unknown platform", func(in *dto.WidgetInput) { in.Platform = "sms" }, "platform", "must be one of: whatsapp, telegram, messenger, email"},
		{"bubble too small", func(in *dto.WidgetInput) { in.Bubble.Size.Width = 43 }, "bubble.size.width", "must be at least 44"},
		{"bubble too tall", func(in *dto.WidgetInput) { in.Bubble.Size.Height = 141 }, "bubble.size.height", "must be at most 140"},
		{"bad shape", func(in *dto.WidgetInput) { in.Bubble.Shape = "square" }, "bubble.shape", "must be one of: circle, rounded"},
		{"icon too big", func(in *dto.WidgetInput) { in.Bubble.IconSize = 73 }, "bubble.iconSize", "must be at most 72"},
		{"long color", func(in *dto.WidgetInput) { in.Bubble.IconColor = strings.Repeat("f", 31) }, "bubble.iconColor", "must be at most 30 characters"},
		{"empty color", func(in *dto.WidgetInput) { in.Bubble.BackgroundColor = "" }, "bubble.backgroundColor", "required"},
		{"bad position", func(in *dto.WidgetInput) { in.Bubble.Position = "top-left" }, "bubble.position", "must be one of: bottom-right, bottom-left, custom"},
		{"offset too big", func(in *dto.WidgetInput) { in.Bubble.OffsetX = helpers.Ptr(121) }, "bubble.offsetX", "must be at most 120"},
		{"negative offset", func(in *dto.WidgetInput) { in.Bubble.OffsetY = helpers.Ptr(-1) }, "bubble.offsetY", "must be at least 0"},
		{"missing offset", func(in *dto.WidgetInput) { in.Bubble.OffsetY = nil }, "bubble.offsetY", "required"},
		{"missing shadow", func(in *dto.WidgetInput) { in.Bubble.Shadow = nil }, "bubble.shadow", "required"},
		{"panel too narrow", func(in *dto.WidgetInput) { in.Widget.Width = 239 }, "widget.width", "must be at least 240"},
		{"panel too tall", func(in *dto.WidgetInput) { in.Widget.Height = 641 }, "widget.height", "must be at most 640"},
		{"blank heading", func(in *dto.WidgetInput) { in.Widget.HeadingText = "" }, "widget.headingText", "required"},
		{"long greeting", func(in *dto.WidgetInput) { in.Widget.GreetingText = strings.Repeat("a", 221) }, "widget.greetingText", "must be at most 220 characters"},
		{"long image url", func(in *dto.WidgetInput) { in.Widget.ProfileImage = strings.Repeat("a", 301) }, "widget.profileImage", "must be at most 300 characters"},
		{"font too small", func(in *dto.WidgetInput) { in.Widget.FontSize = 11 }, "widget.fontSize", "must be at least 12"},
		{"long default message", func(in *dto.WidgetInput) { in.DefaultMessage = strings.Repeat("a", 401) }, "defaultMessage", "must be at most 400 characters"},
		{"long phone", func(in *dto.WidgetInput) { in.Contact.Phone = strings.Repeat("1", 41) }, "contact.phone", "must be at most 40 characters"},
		{"missing phone", func(in *dto.WidgetInput) { in.Contact.Phone = " " }, "contact.phone", "required"},
		{"markup in greeting", func(in *dto.WidgetInput) { in.Widget.GreetingText = "<img src=x onerror=alert(1)>" }, "widget.greetingText", "must not contain markup"},
		{"markup in name", func(in *dto.WidgetInput) { in.Name = "<b>Support</b>" }, "name", "must not contain markup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput(models.PlatformWhatsApp)
			tt.mutate(&in)

			issues := issuesOf(t, validateWidgetInput(&in))
			if got := issues[tt.path]; got != tt.reason {
				t.Fatalf("issue for %s = %q, want %q (all: %v)", tt.path, got, tt.reason, issues)
			}
		})
	}
}

func TestValidateWidgetInputBoundaries(t *testing.T) {
	in := validInput(models.PlatformEmail)
	in.Bubble.Size = dto.SizeInput{Width: 44, Height: 140}
	in.Bubble.IconSize = 18
	in.Bubble.OffsetX = helpers.Ptr(0)
	in.Bubble.OffsetY = helpers.Ptr(120)
	in.Widget.Width = 480
	in.Widget.Height = 280
	in.Widget.FontSize = 20
	in.Name = strings.Repeat("n", 80)
	in.Widget.GreetingText = "a < b & c > d"

	if err := validateWidgetInput(&in); err != nil {
		t.Fatalf("boundary values should pass: %v", err)
	}
}

func TestValidateWidgetInputReportsAllIssues(t *testing.T) {
	in := validInput(models.PlatformTelegram)
	in.Contact.Username = ""
	in.Bubble.Size.Width = 10
	in.Widget.FontSize = 99

	issues := issuesOf(t, validateWidgetInput(&in))
	for _, key := range []string{"contact.username", "bubble.size.width", "widget.fontSize"} {
		if _, ok := issues[key]; !ok {
			t.Errorf("missing issue %s in %v", key, issues)
		}
	}
}

func TestValidateWidgetID(t *testing.T) {
	if err := validateWidgetID("abc123"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := validateWidgetID(strings.Repeat("a", 32)); err != nil {
		t.Fatalf("32 chars should pass: %v", err)
	}
	for _, id := range []string{"", strings.Repeat("a", 33)} {
		var ve *errs.ValidationError
		if err := validateWidgetID(id); !errors.As(err, &ve) {
			t.Fatalf("id %q: expected ValidationError, got %v", id, err)
		}
	}
}

func TestContainsMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Hello! Let's chat.", false},
		{"Q&A time", false},
		{"1 < 2", false},
		{"<script>x</script>", true},
		{"hi <a href='x'>there</a>", true},
		{"Tom &amp; Jerry <3", false},
		{"\"quoted\" & 'single' <3", false},
		{"line one\r\nline two <3", false},
		{"<b>x</b>", true},
		{"&lt;b&gt; <i>x</i>", true},
	}
	_ = getValidator()
	for _, tt := range tests {
		if got := containsMarkup(tt.in); got != tt.want {
			t.Errorf("containsMarkup(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
