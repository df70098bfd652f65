package services

import (
	"context"
	"errors"
	"sort"

	"github.com/GregMSThompson/chat-widget/internal/dto"
	"github.com/GregMSThompson/chat-widget/internal/errs"
	"github.com/GregMSThompson/chat-widget/internal/models"
	"github.com/GregMSThompson/chat-widget/pkg/helpers"
)

// --- Fakes ---

type fakeWidgetStore struct {
	widgets   map[string]*models.Widget
	createErr error
	getErr    error
	listErr   error
	updateErr error
	deleteErr error
	gets      int
	lastLimit int
	// afterGet runs once a Get has read its result, before returning it.
	afterGet func()
}

func newFakeStore() *fakeWidgetStore {
	return &fakeWidgetStore{widgets: make(map[string]*models.Widget)}
}

func (f *fakeWidgetStore) Create(_ context.Context, w *models.Widget) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.widgets[w.WidgetID]; ok {
		return errs.NewAlreadyExistsError("widget id already in use")
	}
	cp := *w
	f.widgets[w.WidgetID] = &cp
	return nil
}

func (f *fakeWidgetStore) Get(_ context.Context, widgetID string) (*models.Widget, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	w, ok := f.widgets[widgetID]
	if !ok {
		return nil, errs.NewNotFoundError("widget not found")
	}
	cp := *w
	if f.afterGet != nil {
		f.afterGet()
	}
	return &cp, nil
}

func (f *fakeWidgetStore) List(_ context.Context, limit int) ([]*models.Widget, error) {
	f.lastLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.Widget, 0, len(f.widgets))
	for _, w := range f.widgets {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeWidgetStore) Update(_ context.Context, w *models.Widget) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	existing, ok := f.widgets[w.WidgetID]
	if !ok {
		return errs.NewNotFoundError("widget not found")
	}
	cp := *w
	cp.CreatedAt = existing.CreatedAt
	f.widgets[w.WidgetID] = &cp
	return nil
}

func (f *fakeWidgetStore) Delete(_ context.Context, widgetID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.widgets[widgetID]; !ok {
		return errs.NewNotFoundError("widget not found")
	}
	delete(f.widgets, widgetID)
	return nil
}

// fakeCache mirrors the generation guard of the redis cache: a Set carrying
// a generation older than the current one is dropped.
type fakeCache struct {
	entries       map[string]dto.PublicWidget
	gens          map[string]int64
	getErr        error
	setErr        error
	invalidateErr error
	invalidated   []string
	sets          int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries: make(map[string]dto.PublicWidget),
		gens:    make(map[string]int64),
	}
}

func (c *fakeCache) Get(_ context.Context, widgetID string) (*dto.PublicWidget, int64, error) {
	if c.getErr != nil {
		return nil, 0, c.getErr
	}
	gen := c.gens[widgetID]
	w, ok := c.entries[widgetID]
	if !ok {
		return nil, gen, nil
	}
	return &w, gen, nil
}

func (c *fakeCache) Set(_ context.Context, w *dto.PublicWidget, gen int64) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	if c.gens[w.WidgetID] != gen {
		return nil
	}
	c.entries[w.WidgetID] = *w
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, widgetID string) error {
	if c.invalidateErr != nil {
		return c.invalidateErr
	}
	c.invalidated = append(c.invalidated, widgetID)
	c.gens[widgetID]++
	delete(c.entries, widgetID)
	return nil
}

type fakeHost struct {
	objects     map[string][]byte
	contentType string
	err         error
}

func (h *fakeHost) Put(_ context.Context, object, contentType string, data []byte) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	if h.objects == nil {
		h.objects = make(map[string][]byte)
	}
	h.objects[object] = data
	h.contentType = contentType
	return "https://img.example.com/" + object, nil
}

var errBoom = errors.New("boom")

// validInput returns a payload that passes every check for platform.
func validInput(platform models.Platform) dto.WidgetInput {
	in := dto.WidgetInput{
		Name:           "Support",
		Platform:       string(platform),
		DefaultMessage: "Hi!",
		Bubble: dto.BubbleInput{
			Size:            dto.SizeInput{Width: 52, Height: 52},
			Shape:           models.ShapeCircle,
			IconSize:        28,
			IconColor:       "#ffffff",
			BackgroundColor: "#25D366",
			Position:        models.PositionBottomRight,
			OffsetX:         helpers.Ptr(24),
			OffsetY:         helpers.Ptr(24),
			Shadow:          helpers.Ptr(true),
		},
		Widget: dto.PanelInput{
			Width:            320,
			Height:           420,
			HeaderBgColor:    "#25D366",
			HeadingText:      "Chat with us",
			StatusText:       "Typically replies fast",
			GreetingText:     "Hey there! 👋 How can we help?",
			InputPlaceholder: "Type your message...",
			ButtonColor:      "#25D366",
			FontSize:         14,
		},
	}
	switch platform {
	case models.PlatformWhatsApp:
		in.Contact.Phone = "15551234567"
	case models.PlatformTelegram:
		in.Contact.Username = "acme"
	case models.PlatformMessenger:
		in.Contact.PageID = "acme.page"
	case models.PlatformEmail:
		in.Contact.Email = "team@acme.io"
	}
	return in
}
