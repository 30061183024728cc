// Package httpx provides error types for workbench API calls.
package httpx

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork indicates no usable response was received (DNS failure,
	// connection refused, timeout, or an unparseable body).
	ErrNetwork = errors.New("network error")

	// ErrTooManyRedirects indicates the manual redirect budget was exhausted.
	ErrTooManyRedirects = errors.New("too many redirects")
)

// StatusError is an HTTP response with status >= 400, returned to the caller
// instead of data. 4xx carries validation feedback; 5xx is a server fault.
type StatusError struct {
	Status  int
	Method  string
	URL     string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.Status)
}

// IsStatus reports whether err is a StatusError with the given status code.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}
