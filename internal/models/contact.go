package models

// ContactFields is the stored and wire shape of a widget's destination.
// Only the fields of the widget's platform carry data; see Contact.
type ContactFields struct {
	Phone    string `firestore:"phone" json:"phone"`
	Username string `firestore:"username" json:"username"`
	PageID   string `firestore:"pageId" json:"pageId"`
	Email    string `firestore:"email" json:"email"`
	Subject  string `firestore:"subject" json:"subject"`
}

// Contact is one of WhatsAppContact, TelegramContact, MessengerContact or
// EmailContact.
type Contact interface {
	Platform() Platform
	fields() ContactFields
}

type WhatsAppContact struct {
	Phone string
}

type TelegramContact struct {
	Username string
}

type MessengerContact struct {
	PageID string
}

type EmailContact struct {
	Address string
	Subject string
}

func (WhatsAppContact) Platform() Platform  { return PlatformWhatsApp }
func (TelegramContact) Platform() Platform  { return PlatformTelegram }
func (MessengerContact) Platform() Platform { return PlatformMessenger }
func (EmailContact) Platform() Platform     { return PlatformEmail }

func (c WhatsAppContact) fields() ContactFields  { return ContactFields{Phone: c.Phone} }
func (c TelegramContact) fields() ContactFields  { return ContactFields{Username: c.Username} }
func (c MessengerContact) fields() ContactFields { return ContactFields{PageID: c.PageID} }
func (c EmailContact) fields() ContactFields {
	return ContactFields{Email: c.Address, Subject: c.Subject}
}

// ContactFor picks the active sub-shape of f for platform p. It returns nil
// for unknown platforms.
func ContactFor(p Platform, f ContactFields) Contact {
	switch p {
	case PlatformWhatsApp:
		return WhatsAppContact{Phone: f.Phone}
	case PlatformTelegram:
		return TelegramContact{Username: f.Username}
	case PlatformMessenger:
		return MessengerContact{PageID: f.PageID}
	case PlatformEmail:
		return EmailContact{Address: f.Email, Subject: f.Subject}
	default:
		return nil
	}
}

// Fields flattens c back into the stored bag with every inactive field blank.
func Fields(c Contact) ContactFields {
	if c == nil {
		return ContactFields{}
	}
	return c.fields()
}
