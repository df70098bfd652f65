package embed

import (
	"strings"

	"github.com/GregMSThompson/chat-widget/internal/models"
)

// RedirectURL builds the deep link that opens a conversation on the widget's
// platform with message prefilled. Unknown platforms get "#".
func RedirectURL(platform models.Platform, contact models.ContactFields, message string) string {
	text := EncodeURIComponent(message)

	switch c := models.ContactFor(platform, contact).(type) {
	case models.WhatsAppContact:
		return "https://wa.me/" + c.Phone + "?text=" + text
	case models.TelegramContact:
		return "https://t.me/" + c.Username + "?text=" + text
	case models.MessengerContact:
		return "https://m.me/" + c.PageID + "?ref=" + text
	case models.EmailContact:
		subject := c.Subject
		if subject == "" {
			subject = DefaultSubject
		}
		return "mailto:" + c.Address + "?subject=" + EncodeURIComponent(subject) + "&body=" + text
	default:
		return "#"
	}
}

// JoinMessage joins the widget's default message and what the visitor typed,
// skipping empty parts. An empty result means nothing should be sent.
func JoinMessage(defaultMessage, typed string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{defaultMessage, typed} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

const upperhex = "0123456789ABCDEF"

// EncodeURIComponent percent-encodes s the way browsers do for
// encodeURIComponent: everything except A-Z a-z 0-9 and -_.!~*'() is
// escaped byte by byte from its UTF-8 form.
func EncodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
