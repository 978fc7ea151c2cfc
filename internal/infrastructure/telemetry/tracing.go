package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName identifies business spans created by the application layer.
const TracerName = "bizgrid-backend"

// StartSpan opens an internal span named service.method on the global
// tracer provider. Callers must End the returned span.
//
//	ctx, span := telemetry.StartSpan(ctx, "inventory", "adjust")
//	defer span.End()
func StartSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	opts := []trace.SpanStartOption{trace.WithSpanKind(trace.SpanKindInternal)}
	if len(attrs) > 0 {
		opts = append(opts, trace.WithAttributes(attrs...))
	}
	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, service+"."+method, opts...)
}

// RecordError attaches err to the span and flips its status to error.
// Nil spans and nil errors are ignored.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// AddEvent records a timestamped annotation on the span.
func AddEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	if span == nil {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// Span attribute keys shared by the application services. Metric
// attributes live in metrics.go as attribute.Key values.
const (
	SpanAttrItemID         = "item_id"
	SpanAttrAdjustmentType = "adjustment_type"
	SpanAttrQuantity       = "quantity"

	SpanAttrTransactionType = "transaction_type"

	SpanAttrBoardID  = "board_id"
	SpanAttrColumnID = "column_id"
	SpanAttrCardID   = "card_id"
)
