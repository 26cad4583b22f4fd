package pipeline

import (
	"context"
	"fmt"
)

// Kind distinguishes no-result invocations from value-returning ones.
type Kind string

const (
	// KindSend marks invocations of operations that return nothing (Send, Exec).
	KindSend Kind = "Send"

	// KindGet marks invocations of operations that return a value (Get, Fetch).
	KindGet Kind = "Get"
)

// Phase is the position of a marker relative to the operation call.
type Phase string

const (
	PhaseBefore Phase = "Before"
	PhaseAfter  Phase = "After"
)

// Invocation describes one call through a pipeline.
type Invocation struct {
	Kind    Kind
	Handler string
}

// Step is one link of the invocation chain. The innermost step calls the operation.
type Step func(ctx context.Context) error

// WrapFunc decorates a step with a cross-cutting concern.
//
// A wrapper must call next at most once and must not recover panics raised by it:
// failures of the operation belong to the caller. A wrapper may refuse the call by
// returning an error without calling next; Exec and Fetch return that error,
// Send and Get panic with it.
type WrapFunc func(inv Invocation, next Step) Step

// FormatMarker returns the marker line (without newline) for the given phase of an invocation.
func FormatMarker(kind Kind, phase Phase, handler string) string {
	return fmt.Sprintf("##### %s -> %s %s #####", kind, phase, handler)
}
