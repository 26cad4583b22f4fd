package wrapper

import (
	"context"

	"github.com/rise-and-shine/pipeline/pipeline"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/rise-and-shine/pipeline"

// NewTracingWrapper starts one span per invocation, named "{Kind} {Handler}".
// A nil provider falls back to the global one installed by tracing.InitGlobalTracer.
func NewTracingWrapper(tp trace.TracerProvider) pipeline.WrapFunc {
	return func(inv pipeline.Invocation, next pipeline.Step) pipeline.Step {
		provider := tp
		if provider == nil {
			provider = otel.GetTracerProvider()
		}
		tracer := provider.Tracer(tracerName)
		spanName := string(inv.Kind) + " " + inv.Handler

		return func(ctx context.Context) error {
			ctx, span := tracer.Start(ctx, spanName, trace.WithAttributes(
				attribute.String("pipeline.handler", inv.Handler),
				attribute.String("pipeline.kind", string(inv.Kind)),
			))
			completed := false

			defer func() {
				if !completed {
					span.SetStatus(codes.Error, "operation panicked")
				}
				span.End()
			}()

			err := next(ctx)
			completed = true

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}

			return err
		}
	}
}
