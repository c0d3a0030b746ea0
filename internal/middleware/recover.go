package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/soaringjerry/ec0301/internal/utils"
	"go.uber.org/zap"
)

// Recover turns a handler panic into a 500 so one bad request cannot take
// the process down.
func Recover(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("handler panic",
					zap.String("req_id", RequestIDFromContext(r.Context())),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.StackSkip("stack", 2),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"error":   utils.T(LocaleFromContext(r.Context()), "server.error"),
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
