package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeRateLimited  ErrorCode = "RATE_LIMITED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors. Messages surface verbatim in API envelopes.
var (
	ErrResourceNotFound      = NewError(ErrCodeNotFound, "Resource not found")
	ErrPrincipleNotFound     = NewError(ErrCodeNotFound, "Principle not found")
	ErrCooperationNotFound   = NewError(ErrCodeNotFound, "Cooperation metric not found")
	ErrAutomationNotFound    = NewError(ErrCodeNotFound, "Automation record not found")
	ErrEnvironmentalNotFound = NewError(ErrCodeNotFound, "Environmental metric not found")
	ErrSocialNotFound        = NewError(ErrCodeNotFound, "Social metric not found")
	ErrCityNotFound          = NewError(ErrCodeNotFound, "Circular city not found")
	ErrUserNotFound          = NewError(ErrCodeNotFound, "User not found")
	ErrContributionNotFound  = NewError(ErrCodeNotFound, "Contribution not found")

	ErrUserExists         = NewError(ErrCodeConflict, "User with this email or username already exists")
	ErrInvalidCredentials = NewError(ErrCodeUnauthorized, "Invalid email or password")
	ErrUnauthorized       = NewError(ErrCodeUnauthorized, "Unauthorized")
	ErrForbidden          = NewError(ErrCodeForbidden, "Forbidden: Insufficient permissions")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "invalid payload")
	ErrEmptyUpdate        = NewError(ErrCodeInvalid, "No valid fields to update")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
