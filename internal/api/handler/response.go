package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

// Error type constants of the API envelope.
const (
	ErrTypeValidation  = "VALIDATION_ERROR"
	ErrTypeNotFound    = "NOT_FOUND"
	ErrTypeRateLimited = "RATE_LIMIT_EXCEEDED"
	ErrTypeUpstream    = "UPSTREAM_ERROR"
	ErrTypeInternal    = "INTERNAL_SERVER_ERROR"
)

// Meta carries pagination data alongside list responses.
type Meta struct {
	Page         int `json:"page"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// ErrorBody is the typed error shape inside the envelope.
type ErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Envelope is the uniform response wrapper for every API endpoint.
type Envelope struct {
	Success   bool       `json:"success"`
	Data      any        `json:"data,omitempty"`
	Meta      *Meta      `json:"meta,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
	Timestamp string     `json:"timestamp"`
	Path      string     `json:"path"`
}

// JSON writes a success envelope.
func JSON(w http.ResponseWriter, r *http.Request, status int, data any, meta *Meta) {
	writeEnvelope(w, status, Envelope{
		Success:   true,
		Data:      data,
		Meta:      meta,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
	})
}

// Error writes an error envelope with the given type and message.
func Error(w http.ResponseWriter, r *http.Request, status int, errType, message string) {
	writeEnvelope(w, status, Envelope{
		Success: false,
		Error: &ErrorBody{
			Type:    errType,
			Message: message,
			Code:    status,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
	})
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
