// Package wrapper provides instrumentation wrappers for pipelines.
//
// Each wrapper fills the slot around a handler invocation with one cross-cutting
// concern: context metadata, structured logging, tracing or metrics. Wrappers are
// passed to pipeline.WithWrappers; the first one given is the outermost.
//
// No wrapper recovers panics or rewrites errors. A panicking operation is observed
// through a deferred completion check and then left to unwind to the caller.
package wrapper
