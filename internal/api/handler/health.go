package handler

import (
	"net/http"
)

// HealthChecker reports the cache connection state.
type HealthChecker interface {
	Healthy() bool
}

type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}

// Health returns a handler reporting process and cache health. A degraded
// cache does not fail the check: the service still serves via upstream.
func Health(cache HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cacheStatus := "connected"
		if cache == nil || !cache.Healthy() {
			cacheStatus = "disconnected"
		}

		JSON(w, r, http.StatusOK, HealthResponse{
			Status: "ok",
			Cache:  cacheStatus,
		}, nil)
	}
}
