package wrapper

import (
	"context"
	"errors"
	"time"

	"github.com/code19m/errx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rise-and-shine/pipeline/pipeline"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
	outcomePanic = "panic"
)

// NewMetricsWrapper counts invocations per handler, kind and outcome and
// observes their duration. Collectors already present in reg are reused, so
// every pipeline of a process can share one registry.
func NewMetricsWrapper(reg prometheus.Registerer) (pipeline.WrapFunc, error) {
	invocations, err := registerOrReuse(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pipeline",
			Name:      "invocations_total",
			Help:      "Number of handler invocations by outcome.",
		},
		[]string{"handler", "kind", "outcome"},
	))
	if err != nil {
		return nil, err
	}

	duration, err := registerOrReuse(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pipeline",
			Name:      "invocation_duration_seconds",
			Help:      "Duration of handler invocations.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"handler", "kind"},
	))
	if err != nil {
		return nil, err
	}

	return func(inv pipeline.Invocation, next pipeline.Step) pipeline.Step {
		return func(ctx context.Context) error {
			start := time.Now()
			outcome := outcomePanic

			defer func() {
				invocations.WithLabelValues(inv.Handler, string(inv.Kind), outcome).Inc()
				duration.WithLabelValues(inv.Handler, string(inv.Kind)).Observe(time.Since(start).Seconds())
			}()

			err := next(ctx)
			if err != nil {
				outcome = outcomeError
				return err
			}

			outcome = outcomeOK
			return nil
		}
	}, nil
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return c, errx.Wrap(err)
}
