package domain

// StepStatus represents the outcome of a provisioning step. Steps are
// reported only once finished, so every status is terminal.
type StepStatus string

const (
	// StepStatusCompleted indicates the step finished successfully.
	StepStatusCompleted StepStatus = "completed"
	// StepStatusFailed indicates the step failed; provisioning aborts.
	StepStatusFailed StepStatus = "failed"
	// StepStatusCached indicates the step's result came from the resolution cache.
	StepStatusCached StepStatus = "cached"
	// StepStatusSkipped indicates the step did not apply to the active variant.
	StepStatusSkipped StepStatus = "skipped"
)

// LogLevel represents the severity of a log message, mirroring the standard
// slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
