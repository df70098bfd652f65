package dto

import (
	"time"

	"github.com/GregMSThompson/chat-widget/internal/models"
	"github.com/GregMSThompson/chat-widget/pkg/helpers"
)

// WidgetInput is the dashboard payload for create and update. Ranges are
// enforced at save time; out-of-range values are rejected, never clamped.
type WidgetInput struct {
	Name           string       `json:"name" yaml:"name" validate:"notblank,max=80,nomarkup"`
	Platform       string       `json:"platform" yaml:"platform" validate:"required,oneof=whatsapp telegram messenger email"`
	Contact        ContactInput `json:"contact" yaml:"contact"`
	DefaultMessage string       `json:"defaultMessage" yaml:"defaultMessage" validate:"max=400,nomarkup"`
	Bubble         BubbleInput  `json:"bubble" yaml:"bubble"`
	Widget         PanelInput   `json:"widget" yaml:"widget"`
}

type ContactInput struct {
	Phone    string `json:"phone" yaml:"phone" validate:"max=40"`
	Username string `json:"username" yaml:"username" validate:"max=60"`
	PageID   string `json:"pageId" yaml:"pageId" validate:"max=60"`
	Email    string `json:"email" yaml:"email" validate:"max=120"`
	Subject  string `json:"subject" yaml:"subject" validate:"max=120,nomarkup"`
}

type SizeInput struct {
	Width  int `json:"width" yaml:"width" validate:"min=44,max=140"`
	Height int `json:"height" yaml:"height" validate:"min=44,max=140"`
}

type BubbleInput struct {
	Size            SizeInput `json:"size" yaml:"size"`
	Shape           string    `json:"shape" yaml:"shape" validate:"required,oneof=circle rounded"`
	IconSize        int       `json:"iconSize" yaml:"iconSize" validate:"min=18,max=72"`
	IconColor       string    `json:"iconColor" yaml:"iconColor" validate:"required,max=30"`
	BackgroundColor string    `json:"backgroundColor" yaml:"backgroundColor" validate:"required,max=30"`
	Position        string    `json:"position" yaml:"position" validate:"required,oneof=bottom-right bottom-left custom"`
	OffsetX         *int      `json:"offsetX" yaml:"offsetX" validate:"required,min=0,max=120"`
	OffsetY         *int      `json:"offsetY" yaml:"offsetY" validate:"required,min=0,max=120"`
	Shadow          *bool     `json:"shadow" yaml:"shadow" validate:"required"`
}

type PanelInput struct {
	Width            int    `json:"width" yaml:"width" validate:"min=240,max=480"`
	Height           int    `json:"height" yaml:"height" validate:"min=280,max=640"`
	HeaderBgColor    string `json:"headerBgColor" yaml:"headerBgColor" validate:"required,max=30"`
	HeadingText      string `json:"headingText" yaml:"headingText" validate:"notblank,max=80,nomarkup"`
	StatusText       string `json:"statusText" yaml:"statusText" validate:"max=80,nomarkup"`
	ProfileImage     string `json:"profileImage" yaml:"profileImage" validate:"max=300"`
	GreetingText     string `json:"greetingText" yaml:"greetingText" validate:"max=220,nomarkup"`
	InputPlaceholder string `json:"inputPlaceholder" yaml:"inputPlaceholder" validate:"max=80,nomarkup"`
	ButtonColor      string `json:"buttonColor" yaml:"buttonColor" validate:"required,max=30"`
	FontSize         int    `json:"fontSize" yaml:"fontSize" validate:"min=12,max=20"`
}

// WidgetRef is returned by create and update.
type WidgetRef struct {
	WidgetID string `json:"widgetId"`
}

// WidgetSummary is the list projection of a widget.
type WidgetSummary struct {
	WidgetID  string          `json:"widgetId"`
	Name      string          `json:"name"`
	Platform  models.Platform `json:"platform"`
	UpdatedAt time.Time       `json:"updatedAt"`
	CreatedAt time.Time       `json:"createdAt"`
}

type WidgetList struct {
	Items []WidgetSummary `json:"items"`
}

// PublicWidget is everything the embed script needs and nothing else.
type PublicWidget struct {
	WidgetID       string               `json:"widgetId"`
	Platform       models.Platform      `json:"platform"`
	Contact        models.ContactFields `json:"contact"`
	DefaultMessage string               `json:"defaultMessage"`
	Bubble         models.Bubble        `json:"bubble"`
	Widget         models.Panel         `json:"widget"`
}

type EmbedSnippet struct {
	WidgetID string `json:"widgetId"`
	Snippet  string `json:"snippet"`
}

func ToSummary(w *models.Widget) WidgetSummary {
	return WidgetSummary{
		WidgetID:  w.WidgetID,
		Name:      w.Name,
		Platform:  w.Platform,
		UpdatedAt: w.UpdatedAt,
		CreatedAt: w.CreatedAt,
	}
}

func ToPublic(w *models.Widget) PublicWidget {
	return PublicWidget{
		WidgetID:       w.WidgetID,
		Platform:       w.Platform,
		Contact:        w.Contact,
		DefaultMessage: w.DefaultMessage,
		Bubble:         w.Bubble,
		Widget:         w.Widget,
	}
}

// Apply copies the validated input onto w. The contact bag is normalized
// through the platform's contact shape so inactive fields are cleared.
func (in *WidgetInput) Apply(w *models.Widget) {
	platform := models.Platform(in.Platform)
	contact := models.ContactFields{
		Phone:    in.Contact.Phone,
		Username: in.Contact.Username,
		PageID:   in.Contact.PageID,
		Email:    in.Contact.Email,
		Subject:  in.Contact.Subject,
	}

	w.Name = in.Name
	w.Platform = platform
	w.Contact = models.Fields(models.ContactFor(platform, contact))
	w.DefaultMessage = in.DefaultMessage
	w.Bubble = models.Bubble{
		Size:            models.Size{Width: in.Bubble.Size.Width, Height: in.Bubble.Size.Height},
		Shape:           in.Bubble.Shape,
		IconSize:        in.Bubble.IconSize,
		IconColor:       in.Bubble.IconColor,
		BackgroundColor: in.Bubble.BackgroundColor,
		Position:        in.Bubble.Position,
		OffsetX:         helpers.Value(in.Bubble.OffsetX),
		OffsetY:         helpers.Value(in.Bubble.OffsetY),
		Shadow:          helpers.Value(in.Bubble.Shadow),
	}
	w.Widget = models.Panel{
		Width:            in.Widget.Width,
		Height:           in.Widget.Height,
		HeaderBgColor:    in.Widget.HeaderBgColor,
		HeadingText:      in.Widget.HeadingText,
		StatusText:       in.Widget.StatusText,
		ProfileImage:     in.Widget.ProfileImage,
		GreetingText:     in.Widget.GreetingText,
		InputPlaceholder: in.Widget.InputPlaceholder,
		ButtonColor:      in.Widget.ButtonColor,
		FontSize:         in.Widget.FontSize,
	}
}
