package pipeline

const (
	// CodeInvalidHandlerName is returned when a pipeline is built with a blank display name.
	CodeInvalidHandlerName = "INVALID_HANDLER_NAME"

	// CodeInvalidOutput is returned when a pipeline is built with a nil marker writer.
	CodeInvalidOutput = "INVALID_OUTPUT"

	// CodeNilOperation is returned when Exec or Fetch is called with a nil operation.
	CodeNilOperation = "NIL_OPERATION"
)
