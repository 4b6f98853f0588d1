package models

import (
	"time"
)

// VerificationToken is a short-lived, single-use token proving control of an
// identifier (typically an email address). Only the SHA-256 of the token is
// stored; one live token exists per identifier (last-issued-wins).
type VerificationToken struct {
	Identifier string    `json:"identifier" db:"identifier"`
	TokenHash  string    `json:"-" db:"token_hash"`
	ExpiresAt  time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Expired reports whether the token is unusable at the given instant.
// A token is rejected at or after its expiry.
func (t *VerificationToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// ConsumeResult distinguishes the internal outcomes of a token consumption.
// The HTTP boundary collapses all failures into one generic error; the
// distinction exists for precise logging.
type ConsumeResult int

const (
	// TokenValid means the token matched and has been deleted.
	TokenValid ConsumeResult = iota
	// TokenNotFound means no token was ever issued for the identifier,
	// or it was already consumed.
	TokenNotFound
	// TokenMismatch means a live token exists for the identifier but the
	// submitted value does not match it.
	TokenMismatch
	// TokenExpired means the stored token's expiry has passed.
	TokenExpired
)

// String implements fmt.Stringer for log output.
func (r ConsumeResult) String() string {
	switch r {
	case TokenValid:
		return "valid"
	case TokenNotFound:
		return "not_found"
	case TokenMismatch:
		return "mismatch"
	case TokenExpired:
		return "expired"
	default:
		return "unknown"
	}
}
