package oracle

import "fmt"

// ServiceError represents a failed oracle call: network error, provider
// rejection, empty response, or deadline overrun. Callers treat all of
// these uniformly.
type ServiceError struct {
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("oracle call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("oracle call failed: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}
