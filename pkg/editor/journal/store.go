// Package journal keeps a client-side record of submitted flows so the
// tracker view can offer known flow IDs. Only submission metadata is
// stored — never the graph itself.
package journal

import (
	"context"
	"errors"
	"time"
)

// Entry records one successful flow submission.
type Entry struct {
	// FlowID is the identifier returned by the orchestrator.
	FlowID string `json:"flow_id"`
	// SessionID identifies the editing session that submitted the flow.
	SessionID string `json:"session_id"`
	// NodeCount is the number of nodes in the submitted graph.
	NodeCount int `json:"node_count"`
	// SubmittedAt is the client-side submission time (UTC).
	SubmittedAt time.Time `json:"submitted_at"`
}

// Store persists submission entries.
// Implementations must be safe for concurrent use.
type Store interface {
	// Record stores an entry. Overwrites if the flow ID already exists.
	Record(ctx context.Context, e Entry) error

	// Get retrieves an entry by flow ID.
	// Returns ErrNotFound if the flow was never recorded.
	Get(ctx context.Context, flowID string) (Entry, error)

	// List returns all entries, newest first.
	// Returns empty slice (not error) if nothing has been recorded.
	List(ctx context.Context) ([]Entry, error)

	// Delete removes an entry.
	// Returns nil if the entry doesn't exist.
	Delete(ctx context.Context, flowID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for journal operations.
var (
	// ErrNotFound indicates a flow was never recorded.
	ErrNotFound = errors.New("flow not found in journal")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("journal store closed")
)
