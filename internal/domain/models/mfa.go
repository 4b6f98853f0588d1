package models

import (
	"time"

	"github.com/google/uuid"
)

// MFASecret is a TOTP secret row. A row with Verified=false is a pending
// enrollment; confirming the enrollment flips Verified and enables MFA on the
// user. At most one row exists per user.
type MFASecret struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	SecretEncrypted []byte    `json:"-" db:"secret_encrypted"`
	Verified        bool      `json:"verified" db:"verified"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// MFABackupCode stores the SHA-256 hash of a single backup code.
// The plaintext is returned to the user exactly once at enrollment.
type MFABackupCode struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	CodeHash  string     `json:"-" db:"code_hash"`
	UsedAt    *time.Time `json:"used_at,omitempty" db:"used_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// EnrollmentResponse is returned by the MFA setup endpoint.
type EnrollmentResponse struct {
	Secret    string `json:"secret"`
	QRCodeURL string `json:"qrCodeUrl"`
}

// ActivationResponse is returned exactly once when enrollment is confirmed.
type ActivationResponse struct {
	BackupCodes []string `json:"backupCodes"`
}
