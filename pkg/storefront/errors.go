package storefront

import (
	"fmt"
	"net/http"
)

// APIError is a request the backend answered with a non-2xx status. Message is
// the server-supplied text and may be empty when the body was not an error
// envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("storefront: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}

	return fmt.Sprintf("storefront: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// NetworkError is a request that never produced an HTTP response, or whose
// response could not be read.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("storefront: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
