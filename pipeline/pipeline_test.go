package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/pipeline/pipeline"
)

type greeter struct {
	out   io.Writer
	calls int
}

func (g *greeter) OperationID() string { return "Greeter" }

func (g *greeter) Hi() {
	g.calls++
	fmt.Fprintln(g.out, "Hello World!!!")
}

func (g *greeter) HowAreYou() string {
	g.calls++
	fmt.Fprintln(g.out, "How are you?")
	return "I'm fine, thank you!"
}

type questioner struct{}

func (questioner) OperationID() string { return "Questioner" }

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func newGreeterPipeline(t *testing.T, opts ...pipeline.Option) (*pipeline.Pipeline[*greeter], *greeter, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	g := &greeter{out: buf}
	p, err := pipeline.Of(g, append([]pipeline.Option{pipeline.WithOutput(buf)}, opts...)...)
	require.NoError(t, err)
	return p, g, buf
}

func TestFormatMarker(t *testing.T) {
	tests := []struct {
		kind     pipeline.Kind
		phase    pipeline.Phase
		expected string
	}{
		{pipeline.KindSend, pipeline.PhaseBefore, "##### Send -> Before GreetCommand #####"},
		{pipeline.KindSend, pipeline.PhaseAfter, "##### Send -> After GreetCommand #####"},
		{pipeline.KindGet, pipeline.PhaseBefore, "##### Get -> Before GreetCommand #####"},
		{pipeline.KindGet, pipeline.PhaseAfter, "##### Get -> After GreetCommand #####"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, pipeline.FormatMarker(tc.kind, tc.phase, "GreetCommand"))
		})
	}
}

func TestSend(t *testing.T) {
	p, g, buf := newGreeterPipeline(t)

	p.Send(t.Context(), (*greeter).Hi)

	assert.Equal(t, []string{
		"##### Send -> Before Greeter #####",
		"Hello World!!!",
		"##### Send -> After Greeter #####",
	}, lines(buf))
	assert.Equal(t, 1, g.calls)
}

func TestGet(t *testing.T) {
	p, g, buf := newGreeterPipeline(t)

	answer := pipeline.Get(t.Context(), p, (*greeter).HowAreYou)

	assert.Equal(t, "I'm fine, thank you!", answer)
	assert.Equal(t, []string{
		"##### Get -> Before Greeter #####",
		"How are you?",
		"##### Get -> After Greeter #####",
	}, lines(buf))
	assert.Equal(t, 1, g.calls)
}

func TestGet_ReturnsSameValueAsDirectCall(t *testing.T) {
	buf := &bytes.Buffer{}
	p := pipeline.MustNew("Counter", 41, pipeline.WithOutput(buf))

	got := pipeline.Get(t.Context(), p, func(n int) int { return n + 1 })

	assert.Equal(t, 42, got)
}

func TestSend_PanicPropagatesWithoutAfterMarker(t *testing.T) {
	p, _, buf := newGreeterPipeline(t)

	assert.PanicsWithValue(t, "boom", func() {
		p.Send(context.Background(), func(*greeter) { panic("boom") })
	})

	assert.Equal(t, []string{"##### Send -> Before Greeter #####"}, lines(buf))
}

func TestGet_PanicPropagatesWithoutAfterMarker(t *testing.T) {
	p, _, buf := newGreeterPipeline(t)
	failure := errors.New("query failed")

	assert.PanicsWithError(t, failure.Error(), func() {
		pipeline.Get(context.Background(), p, func(*greeter) string { panic(failure) })
	})

	assert.Equal(t, []string{"##### Get -> Before Greeter #####"}, lines(buf))
}

func TestExec(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		p, g, buf := newGreeterPipeline(t)

		err := p.Exec(t.Context(), func(g *greeter) error {
			g.Hi()
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, g.calls)
		assert.Len(t, lines(buf), 3)
	})

	t.Run("error is returned unchanged", func(t *testing.T) {
		p, _, buf := newGreeterPipeline(t)
		failure := errors.New("command failed")

		err := p.Exec(t.Context(), func(*greeter) error { return failure })

		assert.Same(t, failure, err)
		assert.Equal(t, []string{"##### Send -> Before Greeter #####"}, lines(buf))
	})
}

func TestFetch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		p, _, buf := newGreeterPipeline(t)

		got, err := pipeline.Fetch(t.Context(), p, func(g *greeter) (string, error) {
			return g.HowAreYou(), nil
		})

		require.NoError(t, err)
		assert.Equal(t, "I'm fine, thank you!", got)
		assert.Equal(t, "##### Get -> After Greeter #####", lines(buf)[2])
	})

	t.Run("error and partial result are returned unchanged", func(t *testing.T) {
		p, _, buf := newGreeterPipeline(t)
		failure := errors.New("lookup failed")

		got, err := pipeline.Fetch(t.Context(), p, func(*greeter) (string, error) {
			return "partial", failure
		})

		assert.Same(t, failure, err)
		assert.Equal(t, "partial", got)
		assert.Equal(t, []string{"##### Get -> Before Greeter #####"}, lines(buf))
	})
}

func TestNilOperation(t *testing.T) {
	p, _, buf := newGreeterPipeline(t)

	assert.Panics(t, func() { p.Send(t.Context(), nil) })
	assert.Panics(t, func() { pipeline.Get[*greeter, string](t.Context(), p, nil) })

	err := p.Exec(t.Context(), nil)
	require.Error(t, err)
	assert.Equal(t, pipeline.CodeNilOperation, errx.AsErrorX(err).Code())

	_, err = pipeline.Fetch[*greeter, int](t.Context(), p, nil)
	require.Error(t, err)
	assert.Equal(t, pipeline.CodeNilOperation, errx.AsErrorX(err).Code())

	assert.Empty(t, buf.String())
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		handler  string
		opts     []pipeline.Option
		wantCode string
	}{
		{name: "empty name", handler: "", wantCode: pipeline.CodeInvalidHandlerName},
		{name: "blank name", handler: "   ", wantCode: pipeline.CodeInvalidHandlerName},
		{
			name:     "nil output",
			handler:  "Greeter",
			opts:     []pipeline.Option{pipeline.WithOutput(nil)},
			wantCode: pipeline.CodeInvalidOutput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := pipeline.New(tc.handler, &greeter{}, tc.opts...)

			require.Error(t, err)
			assert.Nil(t, p)
			assert.Equal(t, tc.wantCode, errx.AsErrorX(err).Code())
		})
	}

	assert.Panics(t, func() { pipeline.MustNew("", &greeter{}) })
}

func TestTwoPipelinesKeepTheirNames(t *testing.T) {
	buf := &bytes.Buffer{}
	gp, err := pipeline.Of(&greeter{out: buf}, pipeline.WithOutput(buf))
	require.NoError(t, err)
	qp, err := pipeline.Of(questioner{}, pipeline.WithOutput(buf))
	require.NoError(t, err)

	gp.Send(t.Context(), func(*greeter) {})
	qp.Send(t.Context(), func(questioner) {})

	assert.Equal(t, "Greeter", gp.Name())
	assert.Equal(t, "Questioner", qp.Name())
	assert.Equal(t, []string{
		"##### Send -> Before Greeter #####",
		"##### Send -> After Greeter #####",
		"##### Send -> Before Questioner #####",
		"##### Send -> After Questioner #####",
	}, lines(buf))
}

func TestWrappers_RunOutermostFirstAroundMarkers(t *testing.T) {
	buf := &bytes.Buffer{}
	record := func(label string) pipeline.WrapFunc {
		return func(inv pipeline.Invocation, next pipeline.Step) pipeline.Step {
			return func(ctx context.Context) error {
				fmt.Fprintf(buf, "%s enter %s %s\n", label, inv.Kind, inv.Handler)
				err := next(ctx)
				fmt.Fprintf(buf, "%s leave\n", label)
				return err
			}
		}
	}

	p, err := pipeline.New("Greeter", &greeter{out: buf},
		pipeline.WithOutput(buf),
		pipeline.WithWrappers(record("outer"), record("inner")),
	)
	require.NoError(t, err)

	p.Send(t.Context(), (*greeter).Hi)

	assert.Equal(t, []string{
		"outer enter Send Greeter",
		"inner enter Send Greeter",
		"##### Send -> Before Greeter #####",
		"Hello World!!!",
		"##### Send -> After Greeter #####",
		"inner leave",
		"outer leave",
	}, lines(buf))
}

func TestWrappers_SeeOperationError(t *testing.T) {
	buf := &bytes.Buffer{}
	failure := errors.New("nope")
	var seen error

	p := pipeline.MustNew("Greeter", &greeter{out: buf},
		pipeline.WithOutput(buf),
		pipeline.WithWrappers(func(_ pipeline.Invocation, next pipeline.Step) pipeline.Step {
			return func(ctx context.Context) error {
				seen = next(ctx)
				return seen
			}
		}),
	)

	err := p.Exec(t.Context(), func(*greeter) error { return failure })

	assert.Same(t, failure, err)
	assert.Same(t, failure, seen)
}

func TestWrapperRefusal(t *testing.T) {
	denied := errors.New("denied")
	refuse := func(pipeline.Invocation, pipeline.Step) pipeline.Step {
		return func(context.Context) error { return denied }
	}

	t.Run("Send panics with the wrapper error", func(t *testing.T) {
		p, g, buf := newGreeterPipeline(t, pipeline.WithWrappers(refuse))

		assert.PanicsWithError(t, "denied", func() { p.Send(t.Context(), (*greeter).Hi) })

		assert.Zero(t, g.calls)
		assert.Empty(t, buf.String())
	})

	t.Run("Get panics instead of returning a zero value", func(t *testing.T) {
		p, g, buf := newGreeterPipeline(t, pipeline.WithWrappers(refuse))

		assert.PanicsWithError(t, "denied", func() { pipeline.Get(t.Context(), p, (*greeter).HowAreYou) })

		assert.Zero(t, g.calls)
		assert.Empty(t, buf.String())
	})

	t.Run("Exec and Fetch return the wrapper error", func(t *testing.T) {
		p, g, _ := newGreeterPipeline(t, pipeline.WithWrappers(refuse))

		err := p.Exec(t.Context(), func(*greeter) error { return nil })
		assert.Same(t, denied, err)

		got, err := pipeline.Fetch(t.Context(), p, func(g *greeter) (string, error) { return g.HowAreYou(), nil })
		assert.Same(t, denied, err)
		assert.Empty(t, got)
		assert.Zero(t, g.calls)
	})
}

type brokenWriter struct{ writes int }

func (w *brokenWriter) Write([]byte) (int, error) {
	w.writes++
	return 0, errors.New("disk full")
}

func TestMarkerWriteFailureDoesNotFailInvocation(t *testing.T) {
	out := &brokenWriter{}
	g := &greeter{out: io.Discard}
	p, err := pipeline.Of(g, pipeline.WithOutput(out))
	require.NoError(t, err)

	answer := pipeline.Get(t.Context(), p, (*greeter).HowAreYou)
	assert.NotPanics(t, func() { p.Send(t.Context(), (*greeter).Hi) })
	execErr := p.Exec(t.Context(), func(g *greeter) error {
		g.Hi()
		return nil
	})

	assert.Equal(t, "I'm fine, thank you!", answer)
	require.NoError(t, execErr)
	assert.Equal(t, 3, g.calls)
	assert.Equal(t, 6, out.writes)
}
