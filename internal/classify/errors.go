package classify

import "fmt"

// Error represents a classification failure: the oracle call failed or its
// response could not be used as a catalog. The pipeline recovers from it by
// continuing with an empty catalog.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("classification failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("classification failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
