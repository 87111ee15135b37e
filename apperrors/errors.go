package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrForbidden: the actor lacks the capability for the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound: the target record does not exist or is out of scope.
	ErrNotFound = errors.New("not found")
	// ErrInvalidDecision: an approval action value outside approve/reject.
	ErrInvalidDecision = errors.New("invalid decision")
)

// ValidationError rejects a record before it reaches storage.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
