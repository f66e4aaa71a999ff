package wire

import (
	"errors"
	"fmt"
)

// Sentinel errors for encoding.
var (
	// ErrInvalidInput indicates the free-form input text is not a JSON object.
	ErrInvalidInput = errors.New("input is not a JSON object")

	// ErrNoStartNode indicates the graph is missing its start node.
	ErrNoStartNode = errors.New("start node missing")
)

// InputError reports malformed submission input text. It is a local
// validation failure: no payload is produced and nothing is sent.
type InputError struct {
	// Err is the underlying JSON parse error.
	Err error
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input payload: %v", e.Err)
}

// Unwrap returns ErrInvalidInput for errors.Is support.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// RecordError reports a fetched flow record that is not valid JSON.
type RecordError struct {
	// Body is the raw response body.
	Body []byte
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	return fmt.Sprintf("flow record is not valid JSON (%d bytes)", len(e.Body))
}
