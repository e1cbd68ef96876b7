// Package observability provides structured logging, metrics, and tracing
// for qs: action resolution, template rendering, and command runs.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/randalmurphal/quickscripts/pkg/qs/template"
)

// EnrichLogger adds the action and run ID to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "search", run.ID)
//	enriched.Info("running") // includes action, run_id
func EnrichLogger(logger *slog.Logger, action, runID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("action", action),
		slog.String("run_id", runID),
	)
}

// LogResolve logs where an action's template was found.
func LogResolve(logger *slog.Logger, action, source string) {
	if logger == nil {
		return
	}
	logger.Debug("action resolved",
		slog.String("action", action),
		slog.String("source", source),
	)
}

// LogConfigWarning logs a non-fatal config problem.
func LogConfigWarning(logger *slog.Logger, path, message string) {
	if logger == nil {
		return
	}
	logger.Warn("config warning",
		slog.String("path", path),
		slog.String("warning", message),
	)
}

// LogRender logs a successful render.
func LogRender(logger *slog.Logger, action string, durationMs float64, outputBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("template rendered",
		slog.String("action", action),
		slog.Float64("duration_ms", durationMs),
		slog.Int("output_bytes", outputBytes),
	)
}

// LogRenderError logs a failed render. Template errors carry their kind
// and byte offset.
func LogRenderError(logger *slog.Logger, action string, err error) {
	if logger == nil {
		return
	}
	attrs := []any{
		slog.String("action", action),
		slog.String("error", err.Error()),
	}
	var terr *template.Error
	if errors.As(err, &terr) {
		attrs = append(attrs,
			slog.String("kind", terr.Kind.String()),
			slog.Int("offset", terr.Span.Start),
		)
	}
	logger.Error("template render failed", attrs...)
}

// LogRun logs a finished command.
func LogRun(logger *slog.Logger, action string, dryRun bool, exitCode int, durationMs float64) {
	if logger == nil {
		return
	}
	level := slog.LevelInfo
	if exitCode != 0 {
		level = slog.LevelWarn
	}
	logger.Log(context.Background(), level, "command finished",
		slog.String("action", action),
		slog.Bool("dry_run", dryRun),
		slog.Int("exit_code", exitCode),
		slog.Float64("duration_ms", durationMs),
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
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
