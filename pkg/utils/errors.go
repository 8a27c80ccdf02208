package utils

import (
	"fmt"
	"net/http"
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Common error constructors
func NewBadRequestError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

func NewInternalServerError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}

func NewValidationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Detail:  detail,
	}
}

// NewInvalidIdentifierError returns an error for malformed record identifiers
func NewInvalidIdentifierError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "Invalid identifier",
		Detail:  detail,
	}
}

// NewNotFoundError returns an error when a record does not exist
func NewNotFoundError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Message: message,
	}
}

// NewRateLimitedError returns an error when a mutation exceeds its admission budget
func NewRateLimitedError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusTooManyRequests,
		Message: "Too many requests",
		Detail:  detail,
	}
}

// NewStoreUnavailableError returns an error when the external store is unreachable
func NewStoreUnavailableError() *CustomError {
	return &CustomError{
		Code:    http.StatusServiceUnavailable,
		Message: "Store unavailable",
	}
}
