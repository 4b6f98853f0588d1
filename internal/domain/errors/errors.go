// File: backend/services/account-security-service/internal/domain/errors/errors.go
package errors

import (
	"errors"
)

// Sentinel errors shared across services, repositories and handlers.
var (
	// General
	ErrInternal       = errors.New("internal server error")
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("resource not found")
	ErrAlreadyExists  = errors.New("resource already exists")
	ErrForbidden      = errors.New("access denied")
	ErrUnauthorized   = errors.New("unauthorized")

	// Credentials
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordNotSet     = errors.New("account has no local password")

	// Verification tokens
	ErrInvalidToken = errors.New("invalid verification token")
	ErrExpiredToken = errors.New("expired verification token")

	// Users
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already in use")

	// Two-factor authentication
	ErrInvalid2FACode    = errors.New("invalid 2FA code")
	Err2FAAlreadyEnabled = errors.New("two-factor authentication already enabled")
	Err2FANotEnabled     = errors.New("two-factor authentication not enabled")
	ErrEnrollmentExpired = errors.New("no pending 2FA enrollment")

	// Sessions
	ErrSessionNotFound = errors.New("session not found")
)

// IsNotFound reports whether err denotes a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrPasswordNotSet)
}

// IsForbidden reports whether err denotes an ownership or permission failure.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsUnauthorized reports whether err denotes a missing or failed authentication.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsConflict reports whether err denotes a uniqueness violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrEmailExists)
}

// IsUnprocessable reports whether err denotes a semantically invalid input:
// a failed reauthentication, a bad 2FA code or a bad verification token.
// These map to 422 at the HTTP boundary.
func IsUnprocessable(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalid2FACode) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrEnrollmentExpired) ||
		errors.Is(err, Err2FAAlreadyEnabled) ||
		errors.Is(err, Err2FANotEnabled)
}

// IsTokenRejection reports whether err is a verification token failure.
// The HTTP boundary gives these a single shared message.
func IsTokenRejection(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken)
}

// Is2FAState reports whether err denotes an MFA state that does not permit
// the requested operation.
func Is2FAState(err error) bool {
	return errors.Is(err, Err2FAAlreadyEnabled) ||
		errors.Is(err, Err2FANotEnabled) ||
		errors.Is(err, ErrEnrollmentExpired)
}

// IsBadRequest reports whether err denotes a malformed request payload.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}
