package middleware

import "net/http"

// Headers sets the given fixed headers on every response before calling next.
func Headers(fixed http.Header) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for k, v := range fixed {
				h[k] = append([]string(nil), v...)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NoStore disables caching. Generated documents are built per request and
// the frontend bundle changes between deploys.
var NoStore = Headers(http.Header{
	"Cache-Control": {"no-store, no-cache, must-revalidate, max-age=0"},
	"Pragma":        {"no-cache"},
	"Expires":       {"0"},
})

// SecureHeaders adds standard security headers.
var SecureHeaders = Headers(http.Header{
	"Referrer-Policy":        {"strict-origin-when-cross-origin"},
	"X-Content-Type-Options": {"nosniff"},
	"X-Frame-Options":        {"DENY"},
	"Permissions-Policy":     {"camera=(), microphone=(), geolocation=()"},
})
