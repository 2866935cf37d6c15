package confluence

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors returned by the loaders and resolvers.
var (
	// ErrSpaceNotFound indicates a space key lookup returned no results.
	ErrSpaceNotFound = errors.New("confluence: space not found")

	// ErrInvalidTimestamp indicates a time-windowed load received a
	// timestamp it could not parse. Returned before any network activity.
	ErrInvalidTimestamp = errors.New("confluence: invalid timestamp")

	// ErrInvalidResponse indicates an API response did not match any
	// expected shape.
	ErrInvalidResponse = errors.New("confluence: invalid response shape")

	// ErrStreamDone indicates a page stream has no further batches.
	ErrStreamDone = errors.New("confluence: stream done")
)

// APIError represents a non-2xx API response. The body is kept verbatim so
// callers can inspect the server's error payload.
type APIError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("confluence: API error %d: %s (URL: %s)", e.StatusCode, e.Body, e.URL)
}

// TransportError represents a connection-level failure. The core never
// retries these; retry policy, if any, belongs to the caller's transport.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("confluence: transport error (URL: %s): %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error indicates a missing resource.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrSpaceNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsRateLimited checks if the error indicates the API rate limit was hit.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// IsTransport checks if the error is a connection-level failure.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
