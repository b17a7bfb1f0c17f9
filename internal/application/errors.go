package application

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotFound           = errors.New("not found")
)

// DeniedError: authenticated but unauthorized. Handlers map it to 403,
// never to 404 and never to 401. Entities that exist but sit outside
// the principal's authority scope are reported as denied uniformly
// across boards, tasks and comments.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string { return "denied: " + e.Reason }

func denied(reason string) error { return &DeniedError{Reason: reason} }

// AsDenied reports whether err is a DeniedError.
func AsDenied(err error) (*DeniedError, bool) {
	var de *DeniedError
	ok := errors.As(err, &de)
	return de, ok
}

// ValidationError: invariant violation on input (bad assignee, immutable
// field change, malformed field). Always recoverable by resubmitting
// corrected input.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Details)
}

func invalid(field, msg string) error {
	return &ValidationError{Details: map[string]string{field: msg}}
}

// AsValidation reports whether err is a ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
