package cfgloader

const (
	// CodeInvalidEnvironment is returned when the environment is missing or unknown.
	CodeInvalidEnvironment = "CFG_INVALID_ENVIRONMENT"

	// CodeFileNotFound is returned when ${ENVIRONMENT}.yaml does not exist.
	CodeFileNotFound = "CFG_FILE_NOT_FOUND"

	// CodeInvalidFile is returned when the file cannot be read or unmarshaled.
	CodeInvalidFile = "CFG_INVALID_FILE"

	// CodeValidationFailed is returned when the config fails validation.
	CodeValidationFailed = "CFG_VALIDATION_FAILED"
)
