package output

// Exit codes following sysexits.h convention
const (
	ExitOK          = 0  // Success
	ExitGeneral     = 1  // General error
	ExitUsage       = 2  // Invalid usage / input failed validation
	ExitAuth        = 3  // Authentication failure (wrong secret)
	ExitNotFound    = 4  // Identifier, account or key not found
	ExitConflict    = 5  // Conflict (identifier already registered)
	ExitConfigError = 10 // Configuration error
	ExitIOError     = 74 // Credential store not writable (EX_IOERR)
	ExitTempFail    = 75 // Login throttled (EX_TEMPFAIL)
)

// CLIError represents a structured error with exit code and optional hint
type CLIError struct {
	ExitCode int
	Message  string
	Hint     string
	Err      error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError
func NewCLIError(code int, msg string) *CLIError {
	return &CLIError{
		ExitCode: code,
		Message:  msg,
	}
}

// Wrap creates a CLIError that keeps err as its cause
func Wrap(code int, msg string, err error) *CLIError {
	return &CLIError{
		ExitCode: code,
		Message:  msg,
		Err:      err,
	}
}

// WithHint adds a user-facing hint to the error
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}
