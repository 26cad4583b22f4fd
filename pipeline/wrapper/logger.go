package wrapper

import (
	"context"
	"time"

	"github.com/rise-and-shine/pipeline/observability/logger"
	"github.com/rise-and-shine/pipeline/pipeline"
)

// NewLoggerWrapper logs every invocation once it finishes.
//
// Successful invocations are logged at debug level, failed ones at error level
// with errx fields expanded. A panic is logged at error level and keeps unwinding.
func NewLoggerWrapper(l logger.Logger) pipeline.WrapFunc {
	l = l.Named("pipeline")

	return func(inv pipeline.Invocation, next pipeline.Step) pipeline.Step {
		return func(ctx context.Context) error {
			start := time.Now()
			completed := false

			entry := func() logger.Logger {
				return l.
					WithContext(ctx).
					With("handler", inv.Handler).
					With("kind", string(inv.Kind)).
					With("execution_time", time.Since(start).String())
			}

			defer func() {
				if !completed {
					entry().Error("invocation aborted by panic")
				}
			}()

			err := next(ctx)
			completed = true

			if err != nil {
				entry().Errorx(err)
				return err
			}

			entry().Debug("invocation finished")
			return nil
		}
	}
}
