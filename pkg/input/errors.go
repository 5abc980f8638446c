// pkg/input/errors.go

package input

import "fmt"

// CoercionError reports a token that could not be converted to the
// Spec's value kind. Recovered locally by the prompt loop.
type CoercionError struct {
	Kind  Kind
	Token string
	// InSelection marks a failure inside a comma-separated selection,
	// which rejects the whole input.
	InSelection bool
}

func (e *CoercionError) Error() string {
	if e.InSelection {
		return fmt.Sprintf("Invalid %s value in selection.", e.Kind)
	}
	return fmt.Sprintf("Invalid %s value.", e.Kind)
}

// ValidationError reports input that coerced fine but failed a
// constraint: emptiness, path existence, set membership, or a
// validator. Recovered locally by the prompt loop.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
