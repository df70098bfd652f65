package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/chat-widget/internal/dto"
	"github.com/GregMSThompson/chat-widget/internal/models"
	"github.com/GregMSThompson/chat-widget/internal/response"
)

type WidgetService interface {
	ListWidgets(ctx context.Context) (dto.WidgetList, error)
	GetWidget(ctx context.Context, widgetID string) (*models.Widget, error)
	CreateWidget(ctx context.Context, in dto.WidgetInput) (dto.WidgetRef, error)
	UpdateWidget(ctx context.Context, widgetID string, in dto.WidgetInput) (dto.WidgetRef, error)
	DeleteWidget(ctx context.Context, widgetID string) error
	EmbedSnippet(ctx context.Context, widgetID string) (dto.EmbedSnippet, error)
	Preview(ctx context.Context, req dto.PreviewRequest) (dto.PreviewResponse, error)
	GetPublicWidget(ctx context.Context, widgetID string) (*dto.PublicWidget, error)
}

type widgetHandlers struct {
	ResponseHandler response.ResponseHandler
	WidgetSvc       WidgetService
}

func NewWidgetHandlers(deps *Deps) *widgetHandlers {
	return &widgetHandlers{
		ResponseHandler: deps.ResponseHandler,
		WidgetSvc:       deps.WidgetSvc,
	}
}

func (h *widgetHandlers) WidgetRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListWidgets)
	r.Post("/", h.CreateWidget)
	r.Post("/preview", h.Preview) // must be before /{widgetId}
	r.Get("/{widgetId}", h.GetWidget)
	r.Put("/{widgetId}", h.UpdateWidget)
	r.Delete("/{widgetId}", h.DeleteWidget)
	r.Get("/{widgetId}/embed", h.EmbedSnippet)
	return r
}

func (h *widgetHandlers) ListWidgets(w http.ResponseWriter, r *http.Request) {
	list, err := h.WidgetSvc.ListWidgets(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, list)
}

func (h *widgetHandlers) CreateWidget(w http.ResponseWriter, r *http.Request) {
	var in dto.WidgetInput
	if err := decodeJSON(w, r, maxBodyBytes, &in); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	ref, err := h.WidgetSvc.CreateWidget(r.Context(), in)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, ref)
}

func (h *widgetHandlers) GetWidget(w http.ResponseWriter, r *http.Request) {
	widget, err := h.WidgetSvc.GetWidget(r.Context(), chi.URLParam(r, "widgetId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, widget)
}

func (h *widgetHandlers) UpdateWidget(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	var in dto.WidgetInput
	if err := decodeJSON(w, r, maxBodyBytes, &in); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	ref, err := h.WidgetSvc.UpdateWidget(r.Context(), widgetID, in)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, ref)
}

func (h *widgetHandlers) DeleteWidget(w http.ResponseWriter, r *http.Request) {
	if err := h.WidgetSvc.DeleteWidget(r.Context(), chi.URLParam(r, "widgetId")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *widgetHandlers) EmbedSnippet(w http.ResponseWriter, r *http.Request) {
	snippet, err := h.WidgetSvc.EmbedSnippet(r.Context(), chi.URLParam(r, "widgetId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, snippet)
}

func (h *widgetHandlers) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.PreviewRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	resp, err := h.WidgetSvc.Preview(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}
