package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"
)

// Recoverer converts panics into the API's standard 500 envelope instead of
// tearing down the connection.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						slog.String("request_id", GetRequestID(r.Context())),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"success": false,
						"error": map[string]any{
							"type":    "INTERNAL_SERVER_ERROR",
							"message": "An unexpected error occurred",
							"code":    http.StatusInternalServerError,
						},
						"timestamp": time.Now().UTC().Format(time.RFC3339),
						"path":      r.URL.Path,
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
