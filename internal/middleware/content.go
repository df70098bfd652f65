package middleware

import (
	"net/http"
	"strings"

	"github.com/GregMSThompson/chat-widget/internal/errs"
	"github.com/GregMSThompson/chat-widget/internal/response"
)

// RequireJSON rejects requests whose body is not application/json with a
// 415 error body. Requests without a body pass through, matching chi's
// AllowContentType.
func RequireJSON(rh response.ResponseHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength == 0 {
				next.ServeHTTP(w, r)
				return
			}

			ct := strings.ToLower(strings.TrimSpace(strings.Split(r.Header.Get("Content-Type"), ";")[0]))
			if ct != "application/json" {
				rh.HandleError(w, r, errs.NewUnsupportedMediaTypeError("Content-Type must be application/json"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
