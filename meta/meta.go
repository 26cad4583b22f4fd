// Package meta provides functionality for carrying invocation metadata through context.
package meta

import (
	"context"

	"github.com/code19m/errx"
)

// ContextKey is a type for keys used in context values for metadata.
type ContextKey string

const (
	// TraceID represents a unique identifier for correlating the logs and spans of one invocation.
	TraceID ContextKey = "trace_id"

	// ServiceName identifies the name of current running service.
	ServiceName ContextKey = "service_name"

	// ServiceVersion indicates the version of the service.
	ServiceVersion ContextKey = "service_version"

	// HandlerName is the display name of the handler wrapped by the pipeline.
	HandlerName ContextKey = "handler_name"

	// InvocationKind is the marker kind of the invocation ("Send" or "Get").
	InvocationKind ContextKey = "invocation_kind"
)

const (
	// CodeKeyNotFound is returned by ShouldGetMeta when the key is absent.
	CodeKeyNotFound = "META_KEY_NOT_FOUND"

	// CodeTypeMismatch is returned by ShouldGetMeta when the value is not a string.
	CodeTypeMismatch = "META_TYPE_MISMATCH"
)

//nolint:gochecknoglobals // fixed list of keys extracted from context
var knownKeys = []ContextKey{
	TraceID,
	ServiceName,
	ServiceVersion,
	HandlerName,
	InvocationKind,
}

// InjectMetaToContext adds metadata from the provided map to the context.
// It only adds values that are not empty strings and returns a new context
// with the added values.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // allow due to finite number of keys
		}
	}
	return ctx
}

// ExtractMetaFromContext extracts all known metadata from the provided context.
// Only non-empty string values are included in the returned map.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	for _, k := range knownKeys {
		if v, ok := ctx.Value(k).(string); ok && v != "" {
			data[k] = v
		}
	}
	return data
}

// Find returns the string value stored under key, or an empty string.
func Find(ctx context.Context, key ContextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// ShouldGetMeta returns the string value stored under key.
// It fails when the key is absent or holds a non-string value.
func ShouldGetMeta(ctx context.Context, key ContextKey) (string, error) {
	raw := ctx.Value(key)
	if raw == nil {
		return "", errx.New(
			"meta: key not found",
			errx.WithCode(CodeKeyNotFound),
			errx.WithDetails(errx.D{"key": string(key)}),
		)
	}

	v, ok := raw.(string)
	if !ok {
		return "", errx.New(
			"meta: type mismatch, expected string",
			errx.WithCode(CodeTypeMismatch),
			errx.WithDetails(errx.D{"key": string(key)}),
		)
	}

	return v, nil
}
