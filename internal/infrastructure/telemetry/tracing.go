package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the tracer used for spans started by StartSpan.
const TracerName = "tectle"

// Span attribute keys for order import and filter spans.
const (
	SpanAttrPlatform       attribute.Key = "order.platform"
	SpanAttrOrderCount     attribute.Key = "order.count"
	SpanAttrBatchID        attribute.Key = "import.batch_id"
	SpanAttrOrdersAdded    attribute.Key = "import.added"
	SpanAttrOrdersUpdated  attribute.Key = "import.replaced"
	SpanAttrStatusFilter   attribute.Key = "filter.status"
	SpanAttrPlatformFilter attribute.Key = "filter.platform"
)

// StartSpan starts an internal span on the global tracer provider.
// The caller ends it.
//
//	ctx, span := telemetry.StartSpan(ctx, "orders.import", telemetry.SpanAttrPlatform.String("etsy"))
//	defer span.End()
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordImport stores the outcome of an import batch on span and marks it OK.
func RecordImport(span trace.Span, orders, added, replaced int) {
	span.SetAttributes(
		SpanAttrOrderCount.Int(orders),
		SpanAttrOrdersAdded.Int(added),
		SpanAttrOrdersUpdated.Int(replaced),
	)
	span.SetStatus(codes.Ok, "")
}

// RecordError records err on the span and sets the span status to error.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
