package middleware

import "net/http"

// PublicCORS lets any origin read the response. Preflight requests are
// answered here with 204 and never reach the handler.
func PublicCORS(allowPrivateNetwork bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			if allowPrivateNetwork {
				h.Set("Access-Control-Allow-Private-Network", "true")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
