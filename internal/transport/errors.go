package transport

import "fmt"

// ErrorKind distinguishes the ways a device command can fail.
type ErrorKind string

const (
	// KindNotInstalled means the adb binary is missing from PATH.
	KindNotInstalled ErrorKind = "not_installed"
	// KindExecutionFailed means the command spawned but exited non-zero,
	// or could not be spawned at all.
	KindExecutionFailed ErrorKind = "execution_failed"
)

// Error represents a device-transport failure.
type Error struct {
	Kind   ErrorKind
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transport error (%s): %s: %v", e.Kind, e.Detail, e.Cause)
	}
	return fmt.Sprintf("transport error (%s): %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
