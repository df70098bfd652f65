package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/chat-widget/internal/dto"
	"github.com/GregMSThompson/chat-widget/internal/response"
)

type UploadService interface {
	UploadProfileImage(ctx context.Context, req dto.UploadProfileRequest) (dto.UploadProfileResponse, error)
}

type uploadHandlers struct {
	ResponseHandler response.ResponseHandler
	UploadSvc       UploadService
	bodyLimit       int64
}

// NewUploadHandlers caps request bodies at what a base64 image of
// maxImageBytes needs, plus room for the JSON wrapper. The service applies
// the exact limit.
func NewUploadHandlers(deps *Deps, maxImageBytes int64) *uploadHandlers {
	return &uploadHandlers{
		ResponseHandler: deps.ResponseHandler,
		UploadSvc:       deps.UploadSvc,
		bodyLimit:       maxImageBytes*4/3 + 4096,
	}
}

func (h *uploadHandlers) UploadRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/profile", h.UploadProfile)
	return r
}

func (h *uploadHandlers) UploadProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UploadProfileRequest
	if err := decodeJSON(w, r, h.bodyLimit, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	resp, err := h.UploadSvc.UploadProfileImage(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}
