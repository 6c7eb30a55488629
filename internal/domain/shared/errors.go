package shared

import (
	"errors"
	"fmt"
)

// DomainError carries a stable error code so the kind of a failure survives
// wrapping across repository, service and transport layers.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code. This lets
// wrapped errors match the package sentinels via errors.Is.
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if !errors.As(target, &de) {
		return false
	}
	return e.Code == de.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes understood by the HTTP layer.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInvalidState  = "INVALID_STATE"
)

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput  = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrInvalidState  = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
)

// NotFoundf builds a NOT_FOUND error with a formatted message.
func NotFoundf(format string, args ...any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf(format, args...))
}

// Conflictf builds an ALREADY_EXISTS error with a formatted message.
func Conflictf(format string, args ...any) *DomainError {
	return NewDomainError(CodeAlreadyExists, fmt.Sprintf(format, args...))
}

// IsNotFound reports whether err is (or wraps) a NOT_FOUND domain error.
func IsNotFound(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == CodeNotFound
}

// IsConflict reports whether err is (or wraps) an ALREADY_EXISTS domain error.
func IsConflict(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == CodeAlreadyExists
}
