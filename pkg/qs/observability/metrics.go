package observability

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/randalmurphal/quickscripts/pkg/qs/template"
)

// MetricsRecorder records qs metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRender records a template render with its duration and error status.
	RecordRender(ctx context.Context, action string, duration time.Duration, err error)

	// RecordCommand records a command run (or dry run) and its exit code.
	RecordCommand(ctx context.Context, action string, dryRun bool, exitCode int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	renders      metric.Int64Counter
	renderErrors metric.Int64Counter
	latency      metric.Float64Histogram
	commandRuns  metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("qs")

	renders, err := meter.Int64Counter("qs.template.renders",
		metric.WithDescription("Number of template renders"),
	)
	if err != nil {
		return nil, err
	}

	renderErrors, err := meter.Int64Counter("qs.template.render_errors",
		metric.WithDescription("Number of failed template renders"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("qs.template.latency_ms",
		metric.WithDescription("Template render latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	commandRuns, err := meter.Int64Counter("qs.command.runs",
		metric.WithDescription("Number of commands run"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		renders:      renders,
		renderErrors: renderErrors,
		latency:      latency,
		commandRuns:  commandRuns,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordRender records a template render.
func (m *otelMetrics) RecordRender(ctx context.Context, action string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("action", action))

	m.renders.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if err != nil {
		m.renderErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("action", action),
			attribute.String("kind", ErrorKind(err)),
		))
	}
}

// RecordCommand records a command run.
func (m *otelMetrics) RecordCommand(ctx context.Context, action string, dryRun bool, exitCode int) {
	m.commandRuns.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.Bool("dry_run", dryRun),
		attribute.Int("exit_code", exitCode),
	))
}

// ErrorKind returns the template error kind of err, or "other".
func ErrorKind(err error) string {
	var terr *template.Error
	if errors.As(err, &terr) {
		return terr.Kind.String()
	}
	return "other"
}
