package errors

import (
	stderrors "errors"
	"net/http"
)

// Authentication error types. They never say which half of a credential was wrong.
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeAccountInactive    ErrorType = "account_inactive"
	ErrorTypeTokenExpired       ErrorType = "token_expired"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
	ErrorTypeTooManyAttempts    ErrorType = "too_many_attempts"
)

// AuthError is an AppError raised while authenticating a caller.
type AuthError struct {
	*AppError
	// ShouldLog is false for failures that are routine, like a wrong password.
	ShouldLog bool
	// SecurityEvent marks failures worth counting for brute-force detection.
	SecurityEvent bool
}

func (e *AuthError) Error() string {
	return e.AppError.Error()
}

func (e *AuthError) Unwrap() error {
	return e.AppError
}

func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "Invalid email or password",
			Code:    http.StatusUnauthorized,
		},
		SecurityEvent: true,
	}
}

// NewAccountInactiveError is returned when an INACTIVE or SUSPENDED account tries to log in.
func NewAccountInactiveError(details ...string) *AuthError {
	detail := "Account is not active"
	if len(details) > 0 {
		detail = details[0]
	}
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeAccountInactive,
			Message: "Account is inactive",
			Code:    http.StatusForbidden,
			Details: detail,
			Reason:  "account_inactive",
		},
		SecurityEvent: true,
	}
}

func NewTokenExpiredError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: "Token has expired",
			Code:    http.StatusUnauthorized,
			Details: tokenType,
		},
	}
}

func NewTokenInvalidError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: "Invalid token",
			Code:    http.StatusUnauthorized,
			Details: tokenType,
		},
		SecurityEvent: true,
	}
}

// NewTooManyAttemptsError is returned once the login limiter trips.
func NewTooManyAttemptsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTooManyAttempts,
			Message: "Too many login attempts, try again later",
			Code:    http.StatusTooManyRequests,
			Reason:  "rate_limited",
		},
		ShouldLog:     true,
		SecurityEvent: true,
	}
}

func IsAuthError(err error) bool {
	var authErr *AuthError
	return stderrors.As(err, &authErr)
}

func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// ShouldLogAuthError defaults to true for anything that is not an AuthError.
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true
}

func IsSecurityEvent(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.SecurityEvent
	}
	return false
}
