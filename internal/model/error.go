package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeEmptyBill          = "EMPTY_BILL"
	ErrCodeIO                 = "IO_ERROR"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so errors built with
// Validation or NotFound still match the package sentinels via errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Validation returns a validation error with a formatted message.
func Validation(format string, args ...any) *DomainError {
	return NewDomainError(ErrCodeValidation, fmt.Sprintf(format, args...))
}

// NotFound returns a not-found error with a formatted message.
func NotFound(format string, args ...any) *DomainError {
	return NewDomainError(ErrCodeNotFound, fmt.Sprintf(format, args...))
}

// IO returns an I/O error describing a store or export failure.
func IO(format string, args ...any) *DomainError {
	return NewDomainError(ErrCodeIO, fmt.Sprintf(format, args...))
}

// Common domain errors
var (
	ErrValidation         = NewDomainError(ErrCodeValidation, "Invalid input")
	ErrNotFound           = NewDomainError(ErrCodeNotFound, "Not found")
	ErrEmptyBill          = NewDomainError(ErrCodeEmptyBill, "Bill has no items")
	ErrIO                 = NewDomainError(ErrCodeIO, "Storage unavailable")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Invalid username or password")
	ErrInvalidQuantity    = NewDomainError(ErrCodeValidation, "Quantity must be a positive whole number")
)
