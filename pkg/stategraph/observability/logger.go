// Package observability provides structured logging, metrics, and tracing
// for workflow execution.
//
// Logging uses slog (Go stdlib); metrics and tracing use OpenTelemetry.
// Everything is opt-in with no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds workflow context to a logger.
// Returns a new logger with workflow_id and node_id fields.
func EnrichLogger(logger *slog.Logger, workflowID, nodeID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("workflow_id", workflowID),
		slog.String("node_id", nodeID),
	)
}

// LogRunStart logs the start of a workflow run.
func LogRunStart(logger *slog.Logger, workflowID string, resumed bool) {
	if logger == nil {
		return
	}
	logger.Info("workflow run starting",
		slog.String("workflow_id", workflowID),
		slog.Bool("resumed", resumed),
	)
}

// LogRunComplete logs successful workflow run completion.
func LogRunComplete(logger *slog.Logger, workflowID string, durationMs float64, steps int) {
	if logger == nil {
		return
	}
	logger.Info("workflow run completed",
		slog.String("workflow_id", workflowID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("steps", steps),
	)
}

// LogRunError logs workflow run failure.
func LogRunError(logger *slog.Logger, workflowID string, err error, durationMs float64, lastNode string) {
	if logger == nil {
		return
	}
	logger.Error("workflow run failed",
		slog.String("workflow_id", workflowID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
		slog.String("last_node", lastNode),
	)
}

// LogRunInterrupted logs a run suspending for later resumption.
func LogRunInterrupted(logger *slog.Logger, workflowID, nodeID string) {
	if logger == nil {
		return
	}
	logger.Info("workflow run interrupted",
		slog.String("workflow_id", workflowID),
		slog.String("node_id", nodeID),
	)
}

// LogNodeStart logs node execution start.
func LogNodeStart(logger *slog.Logger, nodeID string) {
	if logger == nil {
		return
	}
	logger.Debug("node starting",
		slog.String("node_id", nodeID),
	)
}

// LogNodeComplete logs successful node completion.
func LogNodeComplete(logger *slog.Logger, nodeID string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("node completed",
		slog.String("node_id", nodeID),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogNodeError logs node execution error.
func LogNodeError(logger *slog.Logger, nodeID string, err error) {
	if logger == nil {
		return
	}
	logger.Error("node failed",
		slog.String("node_id", nodeID),
		slog.String("error", err.Error()),
	)
}

// LogInterruptSaved logs a suspension record being persisted.
func LogInterruptSaved(logger *slog.Logger, workflowID, nodeID string, sizeBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("interrupt record saved",
		slog.String("workflow_id", workflowID),
		slog.String("node_id", nodeID),
		slog.Int("size_bytes", sizeBytes),
	)
}

// LogInterruptStoreError logs a non-fatal suspend-store failure
// (e.g. the best-effort delete after completion).
func LogInterruptStoreError(logger *slog.Logger, workflowID, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("interrupt store operation failed",
		slog.String("workflow_id", workflowID),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
