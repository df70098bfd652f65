package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/chat-widget/internal/dto"
	"github.com/GregMSThompson/chat-widget/internal/errs"
)

func TestGetPublicWidgetWritesRawJSON(t *testing.T) {
	svc := &stubWidgetService{public: &dto.PublicWidget{WidgetID: "w1"}}
	resp := &stubResponseHandler{}
	h := NewPublicHandlers(&Deps{ResponseHandler: resp, WidgetSvc: svc})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/public/widgets/w1", nil), "widgetId", "w1")
	serve(h.GetPublicWidget, req)

	if svc.lastID != "w1" {
		t.Fatalf("service got id %q", svc.lastID)
	}
	if !resp.writeJSONCalled || resp.writeJSONStatus != http.StatusOK {
		t.Fatal("WriteJSON not called with 200")
	}
	if resp.writeSuccessCalled {
		t.Fatal("public endpoint must not use the success envelope")
	}
	if got, ok := resp.writeJSONBody.(*dto.PublicWidget); !ok || got.WidgetID != "w1" {
		t.Fatalf("unexpected body %#v", resp.writeJSONBody)
	}
}

func TestGetPublicWidgetError(t *testing.T) {
	svc := &stubWidgetService{err: errs.NewValidationError("invalid widget id")}
	resp := &stubResponseHandler{}
	h := NewPublicHandlers(&Deps{ResponseHandler: resp, WidgetSvc: svc})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/public/widgets/", nil), "widgetId", "")
	serve(h.GetPublicWidget, req)

	if !resp.handleErrorCalled || resp.handleError != svc.err {
		t.Fatalf("expected error to be handled, got %v", resp.handleError)
	}
}

func TestPublicPreflight(t *testing.T) {
	h := NewPublicHandlers(&Deps{ResponseHandler: &stubResponseHandler{}, WidgetSvc: &stubWidgetService{}})
	rr := httptest.NewRecorder()
	h.PublicRoutes().ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/widgets/w1", nil))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
}
