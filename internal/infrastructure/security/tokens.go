// File: backend/services/account-security-service/internal/infrastructure/security/tokens.go
package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// backupCodeAlphabet excludes nothing: backup codes are uppercase alphanumeric
// per the account-security design, 8 characters, typed by hand.
const backupCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// BackupCodeLength is the length of a generated backup code.
const BackupCodeLength = 8

// VerificationTokenBytes is the entropy, in bytes, of an issued verification
// token. 32 bytes hex-encodes to a 64-character string.
const VerificationTokenBytes = 32

// GenerateSecureToken generates a random token of byteLength bytes, rendered
// as hex (so the string is twice as long). 32 bytes gives 256 bits of entropy.
func GenerateSecureToken(byteLength int) (string, error) {
	if byteLength <= 0 {
		byteLength = 32
	}
	b := make([]byte, byteLength)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", fmt.Errorf("failed to read random bytes for token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashToken hashes a plain token with SHA-256 and returns the hex-encoded
// digest. Used for both verification tokens and backup codes, so the
// plaintext never reaches storage.
func HashToken(plainToken string) string {
	sum := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(sum[:])
}

// GenerateBackupCode generates one 8-character uppercase-alphanumeric code.
// Rejection sampling keeps the alphabet distribution uniform.
func GenerateBackupCode() (string, error) {
	out := make([]byte, BackupCodeLength)
	buf := make([]byte, 1)
	// 252 is the largest multiple of 36 below 256.
	const limit = byte(252)
	for i := 0; i < BackupCodeLength; {
		if _, err := io.ReadFull(rand.Reader, buf); err != nil {
			return "", fmt.Errorf("failed to read random byte for backup code: %w", err)
		}
		if buf[0] >= limit {
			continue
		}
		out[i] = backupCodeAlphabet[int(buf[0])%len(backupCodeAlphabet)]
		i++
	}
	return string(out), nil
}
