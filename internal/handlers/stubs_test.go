package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/chat-widget/internal/dto"
	"github.com/GregMSThompson/chat-widget/internal/models"
)

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	writeJSONCalled bool
	writeJSONStatus int
	writeJSONBody   any

	handleErrorCalled bool
	handleError       error

	writeErrorCalled bool
	writeErrorStatus int
	writeErrorCode   string
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success":true}`))
}

func (s *stubResponseHandler) WriteJSON(w http.ResponseWriter, _ *http.Request, status int, body any) {
	s.writeJSONCalled = true
	s.writeJSONStatus = status
	s.writeJSONBody = body
	w.WriteHeader(status)
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, code, _ string) {
	s.writeErrorCalled = true
	s.writeErrorStatus = status
	s.writeErrorCode = code
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

type stubWidgetService struct {
	lastID    string
	lastInput dto.WidgetInput
	lastReq   dto.PreviewRequest

	list    dto.WidgetList
	widget  *models.Widget
	public  *dto.PublicWidget
	ref     dto.WidgetRef
	snippet dto.EmbedSnippet
	preview dto.PreviewResponse
	err     error
}

func (s *stubWidgetService) ListWidgets(_ context.Context) (dto.WidgetList, error) {
	return s.list, s.err
}

func (s *stubWidgetService) GetWidget(_ context.Context, id string) (*models.Widget, error) {
	s.lastID = id
	return s.widget, s.err
}

func (s *stubWidgetService) CreateWidget(_ context.Context, in dto.WidgetInput) (dto.WidgetRef, error) {
	s.lastInput = in
	return s.ref, s.err
}

func (s *stubWidgetService) UpdateWidget(_ context.Context, id string, in dto.WidgetInput) (dto.WidgetRef, error) {
	s.lastID = id
	s.lastInput = in
	return s.ref, s.err
}

func (s *stubWidgetService) DeleteWidget(_ context.Context, id string) error {
	s.lastID = id
	return s.err
}

func (s *stubWidgetService) EmbedSnippet(_ context.Context, id string) (dto.EmbedSnippet, error) {
	s.lastID = id
	return s.snippet, s.err
}

func (s *stubWidgetService) Preview(_ context.Context, req dto.PreviewRequest) (dto.PreviewResponse, error) {
	s.lastReq = req
	return s.preview, s.err
}

func (s *stubWidgetService) GetPublicWidget(_ context.Context, id string) (*dto.PublicWidget, error) {
	s.lastID = id
	return s.public, s.err
}

type stubUploadService struct {
	called bool
	req    dto.UploadProfileRequest
	resp   dto.UploadProfileResponse
	err    error
}

func (s *stubUploadService) UploadProfileImage(_ context.Context, req dto.UploadProfileRequest) (dto.UploadProfileResponse, error) {
	s.called = true
	s.req = req
	return s.resp, s.err
}

type stubScript struct {
	body string
	etag string
}

func (s stubScript) Bytes() []byte { return []byte(s.body) }
func (s stubScript) ETag() string  { return s.etag }

// withURLParam injects a chi route param the way the router would.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func serve(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, r)
	return rr
}
