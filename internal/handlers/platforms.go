package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/chat-widget/internal/dto"
	"github.com/GregMSThompson/chat-widget/internal/errs"
	"github.com/GregMSThompson/chat-widget/internal/models"
	"github.com/GregMSThompson/chat-widget/internal/presets"
	"github.com/GregMSThompson/chat-widget/internal/response"
)

type platformHandlers struct {
	ResponseHandler response.ResponseHandler
}

func NewPlatformHandlers(deps *Deps) *platformHandlers {
	return &platformHandlers{ResponseHandler: deps.ResponseHandler}
}

func (h *platformHandlers) PlatformRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListPlatforms)
	r.Get("/{platform}", h.GetPlatform)
	return r
}

type platformEntry struct {
	Platform models.Platform `json:"platform"`
	Defaults dto.WidgetInput `json:"defaults"`
}

// ListPlatforms returns every supported platform with its designer defaults,
// in display order.
func (h *platformHandlers) ListPlatforms(w http.ResponseWriter, r *http.Request) {
	all, err := presets.Load()
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	out := make([]platformEntry, 0, len(models.Platforms))
	for _, p := range models.Platforms {
		out = append(out, platformEntry{Platform: p, Defaults: all[p]})
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, out)
}

func (h *platformHandlers) GetPlatform(w http.ResponseWriter, r *http.Request) {
	p := models.Platform(chi.URLParam(r, "platform"))
	defaults, ok, err := presets.Get(p)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if !ok {
		h.ResponseHandler.HandleError(w, r, errs.NewNotFoundError("unknown platform"))
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, defaults)
}
