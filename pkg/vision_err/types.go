// pkg/vision_err/types.go

package vision_err

import "errors"

// ErrInterrupted marks input cancellation: EOF on the terminal, a
// closed pipe, or an interrupt during a blocking read. It is never
// handled below the top-level driver.
var ErrInterrupted = errors.New("input cancelled by user")

// UserError marks an error as expected and recoverable by the user.
type UserError struct {
	cause error
}

func (e *UserError) Error() string {
	return e.cause.Error()
}

func (e *UserError) Unwrap() error {
	return e.cause
}

// NewExpectedError wraps an error for softer UX handling.
func NewExpectedError(err error) error {
	if err == nil {
		return nil
	}
	return &UserError{cause: err}
}

// IsExpectedUserError checks if the error is marked as expected.
func IsExpectedUserError(err error) bool {
	var e *UserError
	return errors.As(err, &e)
}

// IsInterrupt reports whether err stems from input cancellation.
func IsInterrupt(err error) bool {
	return errors.Is(err, ErrInterrupted)
}
