package pipeline

import (
	"context"
	"io"
)

// markerWrapper prints the before marker, runs next and prints the after marker
// only when next returned normally without error.
func markerWrapper(out io.Writer) WrapFunc {
	return func(inv Invocation, next Step) Step {
		return func(ctx context.Context) error {
			writeMarker(out, inv, PhaseBefore)

			err := next(ctx)
			if err != nil {
				return err
			}

			writeMarker(out, inv, PhaseAfter)
			return nil
		}
	}
}

// writeMarker is best effort: a failing marker writer never fails the invocation.
func writeMarker(out io.Writer, inv Invocation, phase Phase) {
	_, _ = io.WriteString(out, FormatMarker(inv.Kind, phase, inv.Handler)+"\n")
}
