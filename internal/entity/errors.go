package entity

import "fmt"

// ValidationError marks a client-supplied value as malformed. The api
// layer maps it to a 400 response.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Invalid builds a ValidationError with a formatted message.
func Invalid(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
