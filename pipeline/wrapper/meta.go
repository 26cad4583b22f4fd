package wrapper

import (
	"context"

	"github.com/rise-and-shine/pipeline/meta"
	"github.com/rise-and-shine/pipeline/observability/tracing"
	"github.com/rise-and-shine/pipeline/pipeline"
)

// NewMetaInjectWrapper adds trace id, service identity, handler name and
// invocation kind to the context seen by the wrappers further in.
// Place it inside the tracing wrapper so the trace id is the span's.
func NewMetaInjectWrapper(serviceName, serviceVersion string) pipeline.WrapFunc {
	return func(inv pipeline.Invocation, next pipeline.Step) pipeline.Step {
		return func(ctx context.Context) error {
			ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
				meta.TraceID:        tracing.GetStartingTraceID(ctx),
				meta.ServiceName:    serviceName,
				meta.ServiceVersion: serviceVersion,
				meta.HandlerName:    inv.Handler,
				meta.InvocationKind: string(inv.Kind),
			})

			return next(ctx)
		}
	}
}
