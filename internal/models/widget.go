package models

import "time"

type Platform string

const (
	PlatformWhatsApp  Platform = "whatsapp"
	PlatformTelegram  Platform = "telegram"
	PlatformMessenger Platform = "messenger"
	PlatformEmail     Platform = "email"
)

// Platforms lists the supported platforms in display order.
var Platforms = []Platform{PlatformWhatsApp, PlatformTelegram, PlatformMessenger, PlatformEmail}

func (p Platform) Valid() bool {
	switch p {
	case PlatformWhatsApp, PlatformTelegram, PlatformMessenger, PlatformEmail:
		return true
	}
	return false
}

// Bubble positions. Anything other than bottom-left anchors to the right edge.
const (
	PositionBottomRight = "bottom-right"
	PositionBottomLeft  = "bottom-left"
	PositionCustom      = "custom"
)

const (
	ShapeCircle  = "circle"
	ShapeRounded = "rounded"
)

// Widget is the stored configuration of one embeddable chat launcher.
type Widget struct {
	WidgetID       string        `firestore:"widgetId" json:"widgetId"`
	Name           string        `firestore:"name" json:"name"`
	Platform       Platform      `firestore:"platform" json:"platform"`
	Contact        ContactFields `firestore:"contact" json:"contact"`
	DefaultMessage string        `firestore:"defaultMessage" json:"defaultMessage"`
	Bubble         Bubble        `firestore:"bubble" json:"bubble"`
	Widget         Panel         `firestore:"widget" json:"widget"`
	CreatedAt      time.Time     `firestore:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `firestore:"updatedAt" json:"updatedAt"`
}

// ActiveContact returns the platform-specific view of the contact bag.
func (w *Widget) ActiveContact() Contact {
	return ContactFor(w.Platform, w.Contact)
}

type Size struct {
	Width  int `firestore:"width" json:"width"`
	Height int `firestore:"height" json:"height"`
}

// Bubble is the floating launcher button.
type Bubble struct {
	Size            Size   `firestore:"size" json:"size"`
	Shape           string `firestore:"shape" json:"shape"`
	IconSize        int    `firestore:"iconSize" json:"iconSize"`
	IconColor       string `firestore:"iconColor" json:"iconColor"`
	BackgroundColor string `firestore:"backgroundColor" json:"backgroundColor"`
	Position        string `firestore:"position" json:"position"`
	OffsetX         int    `firestore:"offsetX" json:"offsetX"`
	OffsetY         int    `firestore:"offsetY" json:"offsetY"`
	Shadow          bool   `firestore:"shadow" json:"shadow"`
}

// Panel is the expandable chat panel shown above the bubble.
type Panel struct {
	Width            int    `firestore:"width" json:"width"`
	Height           int    `firestore:"height" json:"height"`
	HeaderBgColor    string `firestore:"headerBgColor" json:"headerBgColor"`
	HeadingText      string `firestore:"headingText" json:"headingText"`
	StatusText       string `firestore:"statusText" json:"statusText"`
	ProfileImage     string `firestore:"profileImage" json:"profileImage"`
	GreetingText     string `firestore:"greetingText" json:"greetingText"`
	InputPlaceholder string `firestore:"inputPlaceholder" json:"inputPlaceholder"`
	ButtonColor      string `firestore:"buttonColor" json:"buttonColor"`
	FontSize         int    `firestore:"fontSize" json:"fontSize"`
}
