package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var GlobalTracer = otel.Tracer("fitlog")

// EndSpanWithErrCheck marks the span as failed when *errPtr is set, then ends it.
// Meant to be deferred with a pointer to the named error result.
func EndSpanWithErrCheck(span trace.Span, errPtr *error) {
	if errPtr != nil && *errPtr != nil {
		span.SetStatus(codes.Error, (*errPtr).Error())
		span.RecordError(*errPtr)
	}
	span.End()
}
