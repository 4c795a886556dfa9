package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"
)

// visitor tracks one client's request count inside the current window.
type visitor struct {
	count       int
	windowStart time.Time
}

// RateLimit applies a fixed-window request limit per client IP. Exceeding
// the limit returns a 429 with the API's standard error envelope.
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	var (
		mu       sync.Mutex
		visitors = make(map[string]*visitor)
	)

	allow := func(ip string) bool {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()

		// Lazy pruning keeps the map bounded without a background ticker.
		if len(visitors) > 10000 {
			for k, v := range visitors {
				if now.Sub(v.windowStart) > window {
					delete(visitors, k)
				}
			}
		}

		v, ok := visitors[ip]
		if !ok || now.Sub(v.windowStart) > window {
			visitors[ip] = &visitor{count: 1, windowStart: now}
			return true
		}

		v.count++
		return v.count <= max
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !allow(ip) {
				writeRateLimited(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeRateLimited emits the standard envelope without importing the
// handler package, which would invert the layering.
func writeRateLimited(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error": map[string]any{
			"type":    "RATE_LIMIT_EXCEEDED",
			"message": "Too many requests, slow down",
			"code":    http.StatusTooManyRequests,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"path":      r.URL.Path,
	})
}
