package logger

const (
	// CodeInvalidConfig is returned when the logger config cannot be turned into a zap config.
	CodeInvalidConfig = "LOGGER_INVALID_CONFIG"

	// CodeAlreadySet is returned when SetGlobal is called more than once.
	CodeAlreadySet = "LOGGER_ALREADY_SET"
)
