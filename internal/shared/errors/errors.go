// Package errors provides application-level error types and utilities.
// Every expected outcome of the account and billing core is an AppError with a
// stable Type, so the HTTP layer can translate it without string matching.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation              ErrorType = "validation_error"
	ErrorTypeNotFound                ErrorType = "not_found"
	ErrorTypeConflict                ErrorType = "conflict"
	ErrorTypeUnauthorized            ErrorType = "unauthorized"
	ErrorTypeInternal                ErrorType = "internal_error"
	ErrorTypeBadRequest              ErrorType = "bad_request"
	ErrorTypeUnknownRole             ErrorType = "unknown_role"
	ErrorTypeInsufficientPermissions ErrorType = "insufficient_permissions"
	ErrorTypeDuplicateEmail          ErrorType = "duplicate_email"
	ErrorTypeHasDependents           ErrorType = "has_dependents"
	ErrorTypeUnsupportedOperation    ErrorType = "unsupported_operation"
	ErrorTypeCapacityExceeded        ErrorType = "capacity_exceeded"
	ErrorTypeExternalService         ErrorType = "external_service"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
	// Reason is a machine-readable code for denials, e.g. "peer_super_admin".
	Reason string `json:"reason,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// WithReason returns a copy of the error carrying the given reason code.
func (e *AppError) WithReason(reason string) *AppError {
	cp := *e
	cp.Reason = reason
	return &cp
}

func newAppError(t ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    t,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

// NewUnknownRoleError is returned for role tags outside the four known roles.
func NewUnknownRoleError(role string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnknownRole,
		Message: fmt.Sprintf("unknown role %q", role),
		Code:    http.StatusBadRequest,
		Reason:  "unknown_role",
	}
}

// NewInsufficientPermissionsError creates a denial carrying a reason code.
func NewInsufficientPermissionsError(reason, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInsufficientPermissions,
		Message: message,
		Code:    http.StatusForbidden,
		Reason:  reason,
	}
}

// NewDuplicateEmailError creates a new duplicate email error
func NewDuplicateEmailError(email string) *AppError {
	return &AppError{
		Type:    ErrorTypeDuplicateEmail,
		Message: "email already registered",
		Code:    http.StatusConflict,
		Details: email,
		Reason:  "duplicate_email",
	}
}

// NewHasDependentsError names the dependent kind so the operator knows what to reassign.
func NewHasDependentsError(kind, dependentKind string, count int64) *AppError {
	return &AppError{
		Type:    ErrorTypeHasDependents,
		Message: fmt.Sprintf("%s has %d dependent %s account(s); reassign or remove them first", kind, count, dependentKind),
		Code:    http.StatusConflict,
		Details: dependentKind,
		Reason:  "has_dependents",
	}
}

// NewUnsupportedOperationError creates a new unsupported operation error
func NewUnsupportedOperationError(message string, details ...string) *AppError {
	e := newAppError(ErrorTypeUnsupportedOperation, http.StatusBadRequest, message, details)
	e.Reason = "unsupported_operation"
	return e
}

// NewCapacityExceededError creates a new capacity exceeded error
func NewCapacityExceededError(message string, details ...string) *AppError {
	e := newAppError(ErrorTypeCapacityExceeded, http.StatusForbidden, message, details)
	e.Reason = "capacity_exceeded"
	return e
}

// NewExternalServiceError hides collaborator internals; the cause belongs in the logs.
func NewExternalServiceError(service string) *AppError {
	return &AppError{
		Type:    ErrorTypeExternalService,
		Message: fmt.Sprintf("%s is unavailable", service),
		Code:    http.StatusBadGateway,
		Reason:  "external_service",
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// ReasonOf returns the reason code of err, or "" if it carries none.
func ReasonOf(err error) string {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Reason
	}
	return ""
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return IsType(err, ErrorTypeConflict)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

func IsDuplicateEmailError(err error) bool {
	return IsType(err, ErrorTypeDuplicateEmail)
}

func IsInsufficientPermissionsError(err error) bool {
	return IsType(err, ErrorTypeInsufficientPermissions)
}

func IsHasDependentsError(err error) bool {
	return IsType(err, ErrorTypeHasDependents)
}

func IsUnsupportedOperationError(err error) bool {
	return IsType(err, ErrorTypeUnsupportedOperation)
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL duplicate entry error
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// PostgreSQL unique violation
	if strings.Contains(errStr, "unique constraint") || strings.Contains(errStr, "violates unique constraint") {
		return true
	}
	// SQLite
	if strings.Contains(errStr, "UNIQUE constraint failed") {
		return true
	}
	return false
}
