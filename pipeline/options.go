package pipeline

import (
	"io"
	"os"
)

type options struct {
	out      io.Writer
	wrappers []WrapFunc
}

// Option configures a Pipeline at construction time.
type Option func(*options)

// WithOutput sets the writer markers are printed to. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithWrappers appends wrappers to the invocation chain.
// The first wrapper is the outermost; markers always sit directly around the operation.
func WithWrappers(wrappers ...WrapFunc) Option {
	return func(o *options) {
		o.wrappers = append(o.wrappers, wrappers...)
	}
}

func buildOptions(opts []Option) options {
	o := options{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
