package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/GregMSThompson/chat-widget/internal/dto"
	"github.com/GregMSThompson/chat-widget/internal/embed"
	"github.com/GregMSThompson/chat-widget/internal/errs"
	"github.com/GregMSThompson/chat-widget/internal/models"
	"github.com/GregMSThompson/chat-widget/pkg/logger"
)

const (
	listLimit       = 50
	idLength        = 12
	maxCreateTrials = 3
)

// widgetStore is the document storage interface for widgets.
type widgetStore interface {
	Create(ctx context.Context, w *models.Widget) error
	Get(ctx context.Context, widgetID string) (*models.Widget, error)
	List(ctx context.Context, limit int) ([]*models.Widget, error)
	Update(ctx context.Context, w *models.Widget) error
	Delete(ctx context.Context, widgetID string) error
}

// publicCache holds public projections. Get returns a nil widget on a miss
// along with the generation Set must be given; Set drops fills whose
// generation was bumped by Invalidate in the meantime.
type publicCache interface {
	Get(ctx context.Context, widgetID string) (*dto.PublicWidget, int64, error)
	Set(ctx context.Context, w *dto.PublicWidget, gen int64) error
	Invalidate(ctx context.Context, widgetID string) error
}

type widgetService struct {
	store     widgetStore
	cache     publicCache
	publicURL string
	newID     func() string
}

// NewWidgetService wires the widget operations. cache may be nil.
func NewWidgetService(store widgetStore, cache publicCache, publicURL string) *widgetService {
	return &widgetService{
		store:     store,
		cache:     cache,
		publicURL: strings.TrimRight(publicURL, "/"),
		newID:     newWidgetID,
	}
}

func newWidgetID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
}

// --- Dashboard operations ---

func (s *widgetService) ListWidgets(ctx context.Context) (dto.WidgetList, error) {
	widgets, err := s.store.List(ctx, listLimit)
	if err != nil {
		return dto.WidgetList{}, err
	}
	items := make([]dto.WidgetSummary, len(widgets))
	for i, w := range widgets {
		items[i] = dto.ToSummary(w)
	}
	return dto.WidgetList{Items: items}, nil
}

func (s *widgetService) GetWidget(ctx context.Context, widgetID string) (*models.Widget, error) {
	if err := validateWidgetID(widgetID); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, widgetID)
}

// CreateWidget stores a new widget under a fresh random id, drawing a new id
// when the store reports a collision.
func (s *widgetService) CreateWidget(ctx context.Context, in dto.WidgetInput) (dto.WidgetRef, error) {
	if err := validateWidgetInput(&in); err != nil {
		return dto.WidgetRef{}, err
	}

	log := logger.FromContext(ctx)
	w := new(models.Widget)
	in.Apply(w)

	for attempt := 1; attempt <= maxCreateTrials; attempt++ {
		w.WidgetID = s.newID()
		err := s.store.Create(ctx, w)
		if err == nil {
			log.Info("widget created", "widget_id", w.WidgetID, "platform", w.Platform)
			return dto.WidgetRef{WidgetID: w.WidgetID}, nil
		}
		var exists *errs.AlreadyExistsError
		if !errors.As(err, &exists) {
			return dto.WidgetRef{}, err
		}
		log.Warn("widget id collision", "widget_id", w.WidgetID, "attempt", attempt)
	}

	return dto.WidgetRef{}, errs.NewDatabaseError("create", "failed to allocate widget id",
		errors.New("id collided on every attempt"))
}

func (s *widgetService) UpdateWidget(ctx context.Context, widgetID string, in dto.WidgetInput) (dto.WidgetRef, error) {
	if err := validateWidgetID(widgetID); err != nil {
		return dto.WidgetRef{}, err
	}
	if err := validateWidgetInput(&in); err != nil {
		return dto.WidgetRef{}, err
	}

	w := &models.Widget{WidgetID: widgetID}
	in.Apply(w)
	if err := s.store.Update(ctx, w); err != nil {
		return dto.WidgetRef{}, err
	}
	if err := s.invalidate(ctx, widgetID); err != nil {
		return dto.WidgetRef{}, err
	}

	logger.FromContext(ctx).Info("widget updated", "widget_id", widgetID)
	return dto.WidgetRef{WidgetID: widgetID}, nil
}

func (s *widgetService) DeleteWidget(ctx context.Context, widgetID string) error {
	if err := validateWidgetID(widgetID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, widgetID); err != nil {
		return err
	}
	if err := s.invalidate(ctx, widgetID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("widget deleted", "widget_id", widgetID)
	return nil
}

func (s *widgetService) EmbedSnippet(ctx context.Context, widgetID string) (dto.EmbedSnippet, error) {
	if _, err := s.GetWidget(ctx, widgetID); err != nil {
		return dto.EmbedSnippet{}, err
	}
	return dto.EmbedSnippet{
		WidgetID: widgetID,
		Snippet:  embed.Snippet(s.publicURL, widgetID),
	}, nil
}

// Preview validates a configuration without saving it and reports how it
// would lay out and where message would be sent.
func (s *widgetService) Preview(_ context.Context, req dto.PreviewRequest) (dto.PreviewResponse, error) {
	if err := validateWidgetInput(&req.Config); err != nil {
		return dto.PreviewResponse{}, err
	}

	w := new(models.Widget)
	req.Config.Apply(w)

	resp := dto.PreviewResponse{
		Layout:  embed.ComputeLayout(w.Bubble),
		Message: embed.JoinMessage(w.DefaultMessage, req.Message),
	}
	if resp.Message != "" {
		resp.RedirectURL = embed.RedirectURL(w.Platform, w.Contact, resp.Message)
	}
	return resp, nil
}

// --- Public operations ---

// GetPublicWidget returns the fields the embed script needs. Cache failures
// are logged and fall through to the store.
func (s *widgetService) GetPublicWidget(ctx context.Context, widgetID string) (*dto.PublicWidget, error) {
	if err := validateWidgetID(widgetID); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	var (
		gen      int64
		fillable bool
	)
	if s.cache != nil {
		cached, g, err := s.cache.Get(ctx, widgetID)
		switch {
		case err != nil:
			log.Warn("public cache read failed", "widget_id", widgetID, "error", err)
		case cached != nil:
			return cached, nil
		default:
			gen, fillable = g, true
		}
	}

	w, err := s.store.Get(ctx, widgetID)
	if err != nil {
		return nil, err
	}
	public := dto.ToPublic(w)

	// Without a generation read the fill could race an invalidate.
	if fillable {
		if err := s.cache.Set(ctx, &public, gen); err != nil {
			log.Warn("public cache write failed", "widget_id", widgetID, "error", err)
		}
	}
	return &public, nil
}

// invalidate drops the cached projection. A failure is returned so callers
// do not report success while the public endpoint may still serve stale data.
func (s *widgetService) invalidate(ctx context.Context, widgetID string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx, widgetID); err != nil {
		logger.FromContext(ctx).Error("public cache invalidate failed", "widget_id", widgetID, "error", err)
		return err
	}
	return nil
}
