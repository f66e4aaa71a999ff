// Package observability provides structured logging, metrics, and
// tracing for the studio editor and its flow client.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// Everything is opt-in: all helpers tolerate a nil logger, and no-op
// implementations exist for metrics and tracing.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds flow client context to a logger.
// Returns a new logger with session_id and attempt_id fields.
func EnrichLogger(logger *slog.Logger, sessionID, attemptID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("session_id", sessionID),
		slog.String("attempt_id", attemptID),
	)
}

// LogSubmitStart logs the start of a flow submission.
func LogSubmitStart(logger *slog.Logger, attemptID string, nodeCount int) {
	if logger == nil {
		return
	}
	logger.Info("flow submission starting",
		slog.String("attempt_id", attemptID),
		slog.Int("node_count", nodeCount),
	)
}

// LogSubmitComplete logs a successful flow submission.
func LogSubmitComplete(logger *slog.Logger, attemptID, flowID string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("flow submitted",
		slog.String("attempt_id", attemptID),
		slog.String("flow_id", flowID),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogSubmitError logs a failed flow submission.
func LogSubmitError(logger *slog.Logger, attemptID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("flow submission failed",
		slog.String("attempt_id", attemptID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogFetchStart logs the start of a flow record lookup.
func LogFetchStart(logger *slog.Logger, flowID string) {
	if logger == nil {
		return
	}
	logger.Debug("flow lookup starting",
		slog.String("flow_id", flowID),
	)
}

// LogFetchComplete logs a successful flow record lookup.
func LogFetchComplete(logger *slog.Logger, flowID string, durationMs float64, sizeBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("flow record fetched",
		slog.String("flow_id", flowID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("size_bytes", sizeBytes),
	)
}

// LogFetchError logs a failed flow record lookup.
func LogFetchError(logger *slog.Logger, flowID string, err error) {
	if logger == nil {
		return
	}
	logger.Error("flow lookup failed",
		slog.String("flow_id", flowID),
		slog.String("error", err.Error()),
	)
}

// LogNodeAdded logs creation of a graph node.
func LogNodeAdded(logger *slog.Logger, nodeID string, flowLevel int) {
	if logger == nil {
		return
	}
	logger.Debug("node added",
		slog.String("node_id", nodeID),
		slog.Int("flow_level", flowLevel),
	)
}

// LogNodeRemoved logs removal of a graph node.
func LogNodeRemoved(logger *slog.Logger, nodeID string) {
	if logger == nil {
		return
	}
	logger.Debug("node removed",
		slog.String("node_id", nodeID),
	)
}

// LogConnectionAdded logs creation of a directed edge.
func LogConnectionAdded(logger *slog.Logger, targetID string) {
	if logger == nil {
		return
	}
	logger.Debug("connection added",
		slog.String("target_id", targetID),
	)
}

// LogJournalError logs a journal write failure (non-fatal).
func LogJournalError(logger *slog.Logger, flowID string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal write failed",
		slog.String("flow_id", flowID),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
