// Package errors provides shared error types for the Reddit wiki client.
//
// Two kinds of failure are distinguished: transport errors (the request could not be
// completed or the server answered with a non-2xx status) and decode errors (the server
// answered but the body did not have the expected JSON shape).
package errors

import (
	stderrors "errors"
	"fmt"
)

// TransportError indicates a network failure or a non-2xx HTTP response.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int    // 0 when no response was received
	Body       string // truncated response body, if any
	Err        error  // underlying network error, if any
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.URL, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s %s: API error %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s: API error %d", e.Method, e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError indicates a response body that does not match the expected shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse response from %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a DecodeError for the given endpoint.
func NewDecodeError(endpoint string, err error) *DecodeError {
	return &DecodeError{Endpoint: endpoint, Err: err}
}

// IsTransport returns true if err is or wraps a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return stderrors.As(err, &te)
}

// IsDecode returns true if err is or wraps a DecodeError.
func IsDecode(err error) bool {
	var de *DecodeError
	return stderrors.As(err, &de)
}

// StatusCode returns the HTTP status carried by a TransportError, or 0.
func StatusCode(err error) int {
	var te *TransportError
	if stderrors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}
