package fetcher

import (
	"errors"
	"fmt"
	"net/http"

	goerrors "github.com/go-errors/errors"
)

var (
	// ErrPatternNotFound is returned when the page contains no
	// src="main.<hex>.js" reference. It usually means the page layout changed.
	ErrPatternNotFound = errors.New("script reference pattern not found in page")

	// ErrBodyTooLarge is returned when a response exceeds the size limit.
	ErrBodyTooLarge = errors.New("response body exceeds size limit")
)

// NetworkError reports a failed HTTP request: either the transport failed
// (Err is set, StatusCode is zero) or the server answered with a non-2xx
// status.
type NetworkError struct {
	// URL is the requested URL.
	URL string

	// StatusCode is the HTTP status, zero when no response was received.
	StatusCode int

	// Err is the underlying transport or read error, if any.
	Err error
}

// Error implements error.
func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// newNetworkError builds a *NetworkError and attaches the stack of its
// caller, so a failure report points at the request that failed rather
// than at the pipeline. errors.As still finds the *NetworkError.
func newNetworkError(target string, statusCode int, err error) error {
	return goerrors.Wrap(&NetworkError{URL: target, StatusCode: statusCode, Err: err}, 1)
}
