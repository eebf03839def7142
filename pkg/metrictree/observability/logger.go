// Package observability provides production-grade observability features
// for metrictree: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds metrictree context to a logger.
// Returns a new logger with root_id and node_id fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, rootID, nodeID)
//	enriched.Info("doing work") // includes root_id, node_id
func EnrichLogger(logger *slog.Logger, rootID, nodeID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("root_id", rootID),
		slog.String("node_id", nodeID),
	)
}

// LogReportStart logs the start of a report traversal.
func LogReportStart(logger *slog.Logger, rootID string) {
	if logger == nil {
		return
	}
	logger.Debug("report starting",
		slog.String("root_id", rootID),
	)
}

// LogReportComplete logs successful report completion.
func LogReportComplete(logger *slog.Logger, rootID string, durationMs float64, nodeCount int) {
	if logger == nil {
		return
	}
	logger.Info("report completed",
		slog.String("root_id", rootID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("nodes_rendered", nodeCount),
	)
}

// LogReportError logs a report traversal failure.
func LogReportError(logger *slog.Logger, rootID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("report failed",
		slog.String("root_id", rootID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogCommit logs a value commit on a storage node.
func LogCommit(logger *slog.Logger, rootID, nodeID string) {
	if logger == nil {
		return
	}
	logger.Debug("value committed",
		slog.String("root_id", rootID),
		slog.String("node_id", nodeID),
	)
}

// LogSnapshot logs a report snapshot save.
func LogSnapshot(logger *slog.Logger, rootID string, sizeBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("snapshot saved",
		slog.String("root_id", rootID),
		slog.Int("size_bytes", sizeBytes),
	)
}

// LogSnapshotError logs a snapshot failure (non-fatal).
func LogSnapshotError(logger *slog.Logger, rootID string, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("snapshot failed",
		slog.String("root_id", rootID),
		slog.String("operation", op),
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
