// Package ucdef defines the use case handler family shared across the application.
package ucdef

// Use case types.
const (
	TypeCommand = "command"
	TypeQuery   = "query"
)

// Handler tags a type as a member of the handler family.
//
// It is a marker, not a behavioral contract: a handler may expose any number of
// operations with any signatures. The only thing asked of it is a stable display
// name, which pipelines print in their markers.
//
// Examples: GreetCommand, WellbeingQuery
type Handler interface {
	// OperationID returns the handler's display name, usually its simple type name.
	OperationID() string
}

// Typed is a handler that also reports its use case type, TypeCommand or TypeQuery.
type Typed interface {
	Handler

	// UseCaseType returns TypeCommand or TypeQuery.
	UseCaseType() string
}
