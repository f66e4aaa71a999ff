package client

import (
	"errors"
	"fmt"
)

// Sentinel errors for local validation. These are surfaced before any
// network call is made.
var (
	// ErrMissingFlowID indicates an empty or whitespace-only flow identifier.
	ErrMissingFlowID = errors.New("missing flow identifier")

	// ErrNilSubmission indicates SubmitFlow was called with a nil payload.
	ErrNilSubmission = errors.New("submission cannot be nil")
)

// ErrNoFlowID indicates a well-formed create-flow response without a
// flow identifier.
var ErrNoFlowID = errors.New("response missing flow_id")

// ServiceError reports a failure the orchestration service itself
// described: a non-success status, or a success response lacking the
// expected field. Message carries the service-supplied reason when one
// was provided.
type ServiceError struct {
	// Op is the operation that failed ("submit", "fetch", "pause", "resume").
	Op string
	// StatusCode is the HTTP status, or 0 when the response was a 2xx
	// that failed semantic checks.
	StatusCode int
	// Message is the service-supplied reason, or a generic fallback.
	Message string
	// Err is the underlying sentinel, if any.
	Err error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: service returned %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// TransportError reports a network-level failure: the request never
// produced a usable response.
type TransportError struct {
	// Op is the operation that failed.
	Op string
	// URL is the request URL.
	URL string
	// Err is the underlying transport error.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *TransportError) Unwrap() error {
	return e.Err
}
