package dataaccess

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from a backend service. The transport
// logs it once at the boundary and returns it unchanged; callers decide
// whether to surface it or map it to an empty result.
type APIError struct {
	StatusCode int
	Message    string
	Path       string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d for %s", e.StatusCode, e.Path)
	}
	return fmt.Sprintf("backend returned %d for %s: %s", e.StatusCode, e.Path, e.Message)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsAuth reports whether err is an authentication or authorization
// failure (401 or 403).
func IsAuth(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}
