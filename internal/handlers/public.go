package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/chat-widget/internal/response"
)

// publicHandlers serve the unauthenticated endpoints the embed script calls
// from third-party pages.
type publicHandlers struct {
	ResponseHandler response.ResponseHandler
	WidgetSvc       WidgetService
}

func NewPublicHandlers(deps *Deps) *publicHandlers {
	return &publicHandlers{
		ResponseHandler: deps.ResponseHandler,
		WidgetSvc:       deps.WidgetSvc,
	}
}

func (h *publicHandlers) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/widgets/{widgetId}", h.GetPublicWidget)
	r.Options("/widgets/{widgetId}", preflight)
	return r
}

// GetPublicWidget writes the public projection without the success envelope.
func (h *publicHandlers) GetPublicWidget(w http.ResponseWriter, r *http.Request) {
	widget, err := h.WidgetSvc.GetPublicWidget(r.Context(), chi.URLParam(r, "widgetId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, widget)
}

func preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
