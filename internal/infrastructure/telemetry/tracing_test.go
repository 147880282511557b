package telemetry_test

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
	"go.opentelemetry.io/otel/trace"

	"github.com/tectle/backend/internal/infrastructure/telemetry"
)

func setupSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]any {
	out := make(map[attribute.Key]any, len(attrs))
	for _, kv := range attrs {
		out[kv.Key] = kv.Value.AsInterface()
	}
	return out
}

func TestStartSpan_RecordImport(t *testing.T) {
	recorder := setupSpanRecorder(t)

	ctx, span := telemetry.StartSpan(context.Background(), "orders.import",
		telemetry.SpanAttrPlatform.String("etsy"),
		telemetry.SpanAttrBatchID.String("batch-1"),
	)
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())

	telemetry.RecordImport(span, 3, 2, 1)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "orders.import", s.Name())
	assert.Equal(t, trace.SpanKindInternal, s.SpanKind())
	assert.Equal(t, telemetry.TracerName, s.InstrumentationScope().Name)
	assert.Equal(t, codes.Ok, s.Status().Code)
	assert.Equal(t, map[attribute.Key]any{
		telemetry.SpanAttrPlatform:      "etsy",
		telemetry.SpanAttrBatchID:       "batch-1",
		telemetry.SpanAttrOrderCount:    int64(3),
		telemetry.SpanAttrOrdersAdded:   int64(2),
		telemetry.SpanAttrOrdersUpdated: int64(1),
	}, attrMap(s.Attributes()))
}

func TestRecordError(t *testing.T) {
	recorder := setupSpanRecorder(t)

	_, span := telemetry.StartSpan(context.Background(), "orders.import")
	telemetry.RecordError(span, nil)
	telemetry.RecordError(span, errors.New("no importer registered for platform 'amazon'"))
	span.End()

	s := recorder.Ended()[0]
	assert.Equal(t, codes.Error, s.Status().Code)
	assert.Equal(t, "no importer registered for platform 'amazon'", s.Status().Description)
	require.Len(t, s.Events(), 1)
	assert.Equal(t, "exception", s.Events()[0].Name)
}
