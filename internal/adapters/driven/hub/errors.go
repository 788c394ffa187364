package hub

import (
	"errors"
	"fmt"
	"net/http"
)

// Hub-specific errors.
var (
	// ErrUnexpectedPayload indicates the envelope data did not have the expected shape.
	ErrUnexpectedPayload = errors.New("hub: unexpected response payload")
)

// APIError represents a failed hub request. Message carries the raw response
// text for HTTP failures, or the envelope message when the envelope status
// is not 200.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hub: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsNotFound checks if the error indicates the endpoint or resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsServerError checks if the error is a 5xx failure on the hub.
func IsServerError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// IsBadRequest checks if the hub rejected the request parameters.
func IsBadRequest(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusBadRequest || apiErr.StatusCode == http.StatusUnprocessableEntity
	}
	return false
}
