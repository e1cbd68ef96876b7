package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// attributeKey converts a string to an attribute key.
func attributeKey(k string) attribute.Key { return attribute.Key(k) }

// setupTracingTest creates a test tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("qs")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		tracer = otel.Tracer("qs")
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func TestSpanManagerSpans(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()
	ctx := context.Background()

	ctx, resolve := sm.StartResolveSpan(ctx, "search")
	sm.EndSpanWithError(resolve, nil)

	ctx, render := sm.StartRenderSpan(ctx, "search")
	sm.EndSpanWithError(render, errors.New("bad template"))

	_, run := sm.StartRunSpan(ctx, "search", true)
	sm.EndSpanWithError(run, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 3)

	assert.Equal(t, "qs.resolve", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.String("qs.action", "search"))

	assert.Equal(t, "qs.render", spans[1].Name)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Equal(t, "bad template", spans[1].Status.Description)
	require.NotEmpty(t, spans[1].Events)
	assert.Equal(t, "exception", spans[1].Events[0].Name)

	assert.Equal(t, "qs.run", spans[2].Name)
	assert.Contains(t, spans[2].Attributes, attribute.Bool("qs.dry_run", true))
}

func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()
	ctx, span := sm.StartRunSpan(context.Background(), "build", false)
	sm.AddSpanEvent(ctx, "command.start", attribute.String("shell", "bash"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "command.start", spans[0].Events[0].Name)

	// No span in context is a no-op.
	assert.NotPanics(t, func() {
		AddSpanEvent(context.Background(), "ignored")
	})
}

func TestEndSpanWithErrorNil(t *testing.T) {
	assert.NotPanics(t, func() {
		EndSpanWithError(nil, errors.New("x"))
	})
}
