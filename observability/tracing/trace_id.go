package tracing

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// manualTracePrefix marks trace ids generated without an active span.
const manualTracePrefix = "man-"

// GetStartingTraceID returns the trace ID of the span active in ctx.
// Without a valid span it generates a "man-" prefixed UUID so logs of one
// invocation can still be correlated when tracing is disabled.
func GetStartingTraceID(ctx context.Context) string {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID()
	if traceID.IsValid() {
		return traceID.String()
	}

	return manualTracePrefix + uuid.New().String()
}
