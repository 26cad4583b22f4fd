package cli

const (
	// CodeUnknownScenario is returned when a requested scenario does not exist.
	CodeUnknownScenario = "UNKNOWN_SCENARIO"
)
