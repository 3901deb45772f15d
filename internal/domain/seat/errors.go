package seat

import "fmt"

// ValidationError indicates malformed or missing input from the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NotFoundError indicates a referenced seat does not exist in the store.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("seat %s not found", e.ID)
}

// NewNotFoundError creates a new NotFoundError for the given seat id.
func NewNotFoundError(id string) *NotFoundError {
	return &NotFoundError{ID: id}
}

// ConflictError indicates an operation lost against the seat's current state,
// such as booking a seat that is already booked.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NewConflictError creates a new ConflictError.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// StoreError indicates the underlying persistence layer failed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("seat store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError wraps a persistence failure with the operation that caused it.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
