package model

import (
	"errors"
	"fmt"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Code          string `json:"code"`
	Details       any    `json:"details,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON   = "INVALID_JSON"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeValidation    = "VALIDATION"
	ErrCodeStorage       = "STORAGE_ERROR"
	ErrCodeUnauthorised  = "UNAUTHORIZED"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// DomainError is an error carrying a machine-readable code.
type DomainError struct {
	Code    string
	Message string
	Details any
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is matches any *DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError returns the not-found error for the named entity.
func NewNotFoundError(entity string) *DomainError {
	return NewDomainError(ErrCodeNotFound, fmt.Sprintf("No %s found with this id!", entity))
}

// NewValidationError returns a validation error with per-field details.
func NewValidationError(message string, fields map[string]string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: message,
		Details: fields,
	}
}

// NewStorageError wraps a storage failure. Details are exposed to the caller.
func NewStorageError(message string, details any, cause error) *DomainError {
	return &DomainError{
		Code:    ErrCodeStorage,
		Message: message,
		Details: details,
		cause:   cause,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError(ErrCodeNotFound, "record not found")
	ErrCategoryNotFound = NewNotFoundError("Category")
	ErrProductNotFound  = NewNotFoundError("Product")
	ErrTagNotFound      = NewNotFoundError("Tag")
)

// StorageDetails describes a failure reported by PostgreSQL.
type StorageDetails struct {
	SQLState   string `json:"sqlState,omitempty"`
	Message    string `json:"message,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Table      string `json:"table,omitempty"`
	Constraint string `json:"constraint,omitempty"`
}
