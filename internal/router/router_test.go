package router

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GregMSThompson/chat-widget/internal/dto"
	"github.com/GregMSThompson/chat-widget/internal/errs"
	"github.com/GregMSThompson/chat-widget/internal/handlers"
	"github.com/GregMSThompson/chat-widget/internal/models"
	"github.com/GregMSThompson/chat-widget/internal/response"
	"github.com/GregMSThompson/chat-widget/pkg/logger"
)

type stubWidgetService struct{}

func (stubWidgetService) ListWidgets(context.Context) (dto.WidgetList, error) {
	return dto.WidgetList{Items: []dto.WidgetSummary{}}, nil
}
func (stubWidgetService) GetWidget(_ context.Context, id string) (*models.Widget, error) {
	return &models.Widget{WidgetID: id}, nil
}
func (stubWidgetService) CreateWidget(context.Context, dto.WidgetInput) (dto.WidgetRef, error) {
	return dto.WidgetRef{WidgetID: "new"}, nil
}
func (stubWidgetService) UpdateWidget(_ context.Context, id string, _ dto.WidgetInput) (dto.WidgetRef, error) {
	return dto.WidgetRef{WidgetID: id}, nil
}
func (stubWidgetService) DeleteWidget(context.Context, string) error { return nil }
func (stubWidgetService) EmbedSnippet(_ context.Context, id string) (dto.EmbedSnippet, error) {
	return dto.EmbedSnippet{WidgetID: id}, nil
}
func (stubWidgetService) Preview(context.Context, dto.PreviewRequest) (dto.PreviewResponse, error) {
	return dto.PreviewResponse{}, nil
}
func (stubWidgetService) GetPublicWidget(_ context.Context, id string) (*dto.PublicWidget, error) {
	if id == "missing" {
		return nil, errs.NewNotFoundError("widget not found")
	}
	return &dto.PublicWidget{WidgetID: id, Platform: models.PlatformEmail}, nil
}

type stubUploadService struct{}

func (stubUploadService) UploadProfileImage(context.Context, dto.UploadProfileRequest) (dto.UploadProfileResponse, error) {
	return dto.UploadProfileResponse{URL: "u"}, nil
}

type stubScript struct{}

func (stubScript) Bytes() []byte { return []byte("(()=>{})();") }
func (stubScript) ETag() string  { return `"v1"` }

func newTestRouter(t *testing.T, uploadDir string) http.Handler {
	t.Helper()
	log := slog.New(logger.NewTestHandler(nil, slog.LevelInfo))
	deps := &handlers.Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		WidgetSvc:       stubWidgetService{},
		UploadSvc:       stubUploadService{},
		Script:          stubScript{},
		Production:      true,
	}
	return NewRouter(deps, Options{MaxUploadBytes: 2_000_000, UploadDir: uploadDir})
}

func do(h http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestPublicWidgetRoute(t *testing.T) {
	h := newTestRouter(t, "")

	rr := do(h, http.MethodGet, "/api/public/widgets/abc", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing CORS header")
	}
	if strings.Contains(rr.Body.String(), `"success"`) {
		t.Fatalf("public body should not be enveloped: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"widgetId":"abc"`) {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}

	rr = do(h, http.MethodGet, "/api/public/widgets/missing", "", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("errors must carry CORS headers too")
	}

	rr = do(h, http.MethodOptions, "/api/public/widgets/abc", "", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", rr.Code)
	}
}

func TestScriptRoute(t *testing.T) {
	h := newTestRouter(t, "")

	rr := do(h, http.MethodGet, "/widget.js", "", "")
	if rr.Code != http.StatusOK || rr.Body.String() != "(()=>{})();" {
		t.Fatalf("unexpected response %d %q", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("Access-Control-Allow-Private-Network") != "true" {
		t.Fatal("missing private network header")
	}

	rr = do(h, http.MethodOptions, "/widget.js", "", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
}

func TestDashboardRoutesUseEnvelope(t *testing.T) {
	h := newTestRouter(t, "")

	rr := do(h, http.MethodGet, "/api/widgets", "", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"success":true`) {
		t.Fatalf("unexpected response %d %s", rr.Code, rr.Body.String())
	}

	rr = do(h, http.MethodPost, "/api/widgets", "application/json", `{}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}

	rr = do(h, http.MethodGet, "/api/widgets/abc/embed", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	rr = do(h, http.MethodGet, "/api/platforms/email", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestJSONRequired(t *testing.T) {
	h := newTestRouter(t, "")

	rr := do(h, http.MethodPost, "/api/widgets", "text/plain", `{}`)
	if rr.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"code":"unsupported_media_type"`) {
		t.Fatalf("expected a machine-readable reason, got %s", rr.Body.String())
	}

	rr = do(h, http.MethodPost, "/api/uploads/profile", "multipart/form-data", `x`)
	if rr.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rr.Code)
	}

	rr = do(h, http.MethodPost, "/api/uploads/profile", "application/json; charset=utf-8", `{"dataUrl":"x"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestUploadsServedFromDisk(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "widget_profiles"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "widget_profiles", "a.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := newTestRouter(t, dir)

	rr := do(h, http.MethodGet, "/uploads/widget_profiles/a.png", "", "")
	if rr.Code != http.StatusOK || rr.Body.String() != "png" {
		t.Fatalf("unexpected response %d %q", rr.Code, rr.Body.String())
	}

	rr = do(newTestRouter(t, ""), http.MethodGet, "/uploads/widget_profiles/a.png", "", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without disk hosting, got %d", rr.Code)
	}
}
