package services

import "errors"

// Sentinel error kinds. Callers match them with errors.Is; the handler layer
// maps each kind to an HTTP status.
var (
	// ErrValidation indicates malformed or missing input
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates a uniqueness rule would be broken
	ErrConflict = errors.New("conflict")

	// ErrNotFound indicates the target record does not exist
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the operation is never allowed on the target
	ErrForbidden = errors.New("forbidden")
)

// ServiceError carries a user-facing message alongside its kind
type ServiceError struct {
	Kind    error
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Kind
}

func newServiceError(kind error, message string) *ServiceError {
	return &ServiceError{Kind: kind, Message: message}
}
