// File: backend/services/account-security-service/internal/domain/interfaces/interfaces.go
package interfaces

import (
	"context"
)

// PasswordService defines the interface for password hashing and verification.
type PasswordService interface {
	// HashPassword creates an Argon2id hash of the given password.
	HashPassword(password string) (string, error)

	// CheckPasswordHash compares a plain password against a stored hash.
	// Constant-time; returns false on mismatch, error only on malformed hash.
	CheckPasswordHash(password, hash string) (bool, error)
}

// TOTPService defines the interface for time-based one-time password operations.
type TOTPService interface {
	// GenerateSecret creates a new TOTP secret.
	// accountName is typically the user's email. Returns the base32-encoded
	// secret and the otpauth:// provisioning URI for QR rendering.
	GenerateSecret(accountName string) (secretB32 string, otpAuthURL string, err error)

	// ValidateCode checks the code against the secret using 30-second steps
	// with a tolerance of one step either side.
	ValidateCode(secretB32, code string) (bool, error)
}

// EncryptionService protects TOTP secrets at rest (AES-256-GCM).
type EncryptionService interface {
	Encrypt(plainText []byte) ([]byte, error)
	Decrypt(cipherText []byte) ([]byte, error)
}

// NotificationService hands outbound messages to the delivery stack, which
// lives outside this service.
type NotificationService interface {
	// SendEmailChangeVerification delivers the email-change verification token
	// to the new address.
	SendEmailChangeVerification(ctx context.Context, newEmail, token string) error
}
