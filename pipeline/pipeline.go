// Package pipeline provides a uniform invocation envelope around handlers.
//
// A Pipeline owns exactly one handler and brackets every call of one of the
// handler's operations with a "before" and an "after" marker naming the handler:
//
//	##### Send -> Before GreetCommand #####
//	Hello World!!!
//	##### Send -> After GreetCommand #####
//
// Operations are plain method expressions or closures over the handler. Send and
// Exec take operations without a result, the standalone Get and Fetch functions
// take operations returning a value (Go methods cannot declare type parameters).
//
// Failures raised by an operation are never caught or translated: a panic unwinds
// through the pipeline and an error is returned as the identical value. In both
// cases the after marker is not printed.
package pipeline

import (
	"context"
	"io"
	"strings"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/pipeline/ucdef"
)

// Pipeline wraps a single handler of type H.
// The handler and its display name are fixed at construction.
type Pipeline[H any] struct {
	name     string
	handler  H
	out      io.Writer
	wrappers []WrapFunc
}

// New builds a pipeline owning handler, printing markers with the given display name.
func New[H any](name string, handler H, opts ...Option) (*Pipeline[H], error) {
	if strings.TrimSpace(name) == "" {
		return nil, errx.New(
			"pipeline: handler name must not be empty",
			errx.WithCode(CodeInvalidHandlerName),
			errx.WithType(errx.T_Validation),
		)
	}

	o := buildOptions(opts)
	if o.out == nil {
		return nil, errx.New(
			"pipeline: marker output must not be nil",
			errx.WithCode(CodeInvalidOutput),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"handler": name}),
		)
	}

	return &Pipeline[H]{
		name:     name,
		handler:  handler,
		out:      o.out,
		wrappers: o.wrappers,
	}, nil
}

// Of builds a pipeline named after the handler's OperationID.
func Of[H ucdef.Handler](handler H, opts ...Option) (*Pipeline[H], error) {
	return New(handler.OperationID(), handler, opts...)
}

// MustNew is like New but panics on error. Intended for startup wiring.
func MustNew[H any](name string, handler H, opts ...Option) *Pipeline[H] {
	p, err := New(name, handler, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the handler's display name used in markers.
func (p *Pipeline[H]) Name() string {
	return p.name
}

// Send invokes an operation that returns nothing.
// It panics before printing anything if op is nil. An error produced by a
// wrapper has no other way out, so Send panics with it.
func (p *Pipeline[H]) Send(ctx context.Context, op func(H)) {
	if op == nil {
		panic("pipeline: Send called with nil operation for " + p.name)
	}

	err := p.invoke(ctx, KindSend, func(context.Context) error {
		op(p.handler)
		return nil
	})
	if err != nil {
		panic(err)
	}
}

// Exec invokes an operation that returns nothing but may fail.
// The operation's error is returned unchanged and suppresses the after marker.
func (p *Pipeline[H]) Exec(ctx context.Context, op func(H) error) error {
	if op == nil {
		return nilOperationError(p.name, KindSend)
	}

	return p.invoke(ctx, KindSend, func(context.Context) error {
		return op(p.handler)
	})
}

// Get invokes an operation that returns a value and forwards the value unmodified.
// It panics before printing anything if op is nil, and panics with any error
// produced by a wrapper instead of returning a value the operation never made.
func Get[H, R any](ctx context.Context, p *Pipeline[H], op func(H) R) R {
	if op == nil {
		panic("pipeline: Get called with nil operation for " + p.name)
	}

	var result R
	err := p.invoke(ctx, KindGet, func(context.Context) error {
		result = op(p.handler)
		return nil
	})
	if err != nil {
		panic(err)
	}
	return result
}

// Fetch invokes an operation that returns a value or fails.
// Both results are returned exactly as the operation produced them; an error
// suppresses the after marker.
func Fetch[H, R any](ctx context.Context, p *Pipeline[H], op func(H) (R, error)) (R, error) {
	var result R
	if op == nil {
		return result, nilOperationError(p.name, KindGet)
	}

	err := p.invoke(ctx, KindGet, func(context.Context) error {
		var opErr error
		result, opErr = op(p.handler)
		return opErr
	})
	return result, err
}

// invoke runs call through the configured wrappers and the marker step.
func (p *Pipeline[H]) invoke(ctx context.Context, kind Kind, call Step) error {
	inv := Invocation{Kind: kind, Handler: p.name}

	step := markerWrapper(p.out)(inv, call)
	for i := len(p.wrappers) - 1; i >= 0; i-- {
		step = p.wrappers[i](inv, step)
	}

	return step(ctx)
}

func nilOperationError(name string, kind Kind) error {
	return errx.New(
		"pipeline: nil operation",
		errx.WithCode(CodeNilOperation),
		errx.WithType(errx.T_Validation),
		errx.WithDetails(errx.D{"handler": name, "kind": string(kind)}),
	)
}
