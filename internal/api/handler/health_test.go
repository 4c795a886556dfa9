package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticHealth bool

func (s staticHealth) Healthy() bool { return bool(s) }

func TestHealth(t *testing.T) {
	tests := []struct {
		name      string
		cache     HealthChecker
		wantCache string
	}{
		{name: "cache connected", cache: staticHealth(true), wantCache: "connected"},
		{name: "cache disconnected", cache: staticHealth(false), wantCache: "disconnected"},
		{name: "no cache wired", cache: nil, wantCache: "disconnected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()

			Health(tt.cache)(rec, req)

			// Health is 200 even with a degraded cache; upstream still serves.
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}

			env := decodeEnvelope(t, rec.Body.Bytes())
			data, err := json.Marshal(env.Data)
			if err != nil {
				t.Fatalf("re-marshal data: %v", err)
			}
			var resp HealthResponse
			if err := json.Unmarshal(data, &resp); err != nil {
				t.Fatalf("decode health response: %v", err)
			}

			if resp.Status != "ok" {
				t.Errorf("status field = %q, want ok", resp.Status)
			}
			if resp.Cache != tt.wantCache {
				t.Errorf("cache field = %q, want %q", resp.Cache, tt.wantCache)
			}
		})
	}
}
