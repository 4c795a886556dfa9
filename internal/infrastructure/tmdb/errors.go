package tmdb

import "fmt"

// HTTPError is a non-success response from the catalog API.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream returned status %d", e.Status)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether the upstream answered 404.
func (e *HTTPError) IsNotFound() bool {
	return e.Status == 404
}

// NetworkError is a transport-level failure: no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("upstream request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RequestError is a local failure while building the request.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("failed to build upstream request: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
