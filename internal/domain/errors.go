package domain

import "fmt"

// DomainError is the error type returned by planning operations. Errors
// compare by Code so errors.Is(err, ErrNotFound) matches any not-found error.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

const (
	CodeValidation = "VALIDATION"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
)

var (
	// ErrValidation - a required field is empty or a value is not accepted.
	ErrValidation = &DomainError{Code: CodeValidation, Message: "validation failed"}

	// ErrNotFound - the referenced id does not exist in its expected scope.
	ErrNotFound = &DomainError{Code: CodeNotFound, Message: "not found"}

	// ErrConflict - the operation would violate a structural floor.
	ErrConflict = &DomainError{Code: CodeConflict, Message: "conflict"}
)

func NewValidationError(field, reason string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("%s %s", field, reason),
	}
}

func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %q not found", entity, id),
	}
}

func NewConflictError(reason string) *DomainError {
	return &DomainError{
		Code:    CodeConflict,
		Message: reason,
	}
}
