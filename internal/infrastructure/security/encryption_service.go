// File: backend/services/account-security-service/internal/infrastructure/security/encryption_service.go
package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/interfaces"
)

// aesGCMEncryptionService implements interfaces.EncryptionService using
// AES-256-GCM. The stored form is nonce + ciphertext + tag.
type aesGCMEncryptionService struct {
	key []byte
}

// NewAESGCMEncryptionService creates an EncryptionService from a hex-encoded
// 32-byte key (64 hex characters).
func NewAESGCMEncryptionService(keyHex string) (interfaces.EncryptionService, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex key: %w", err)
	}
	if len(key) != 32 {
		return nil, errors.New("invalid key length: must be 32 bytes for AES-256")
	}
	return &aesGCMEncryptionService{key: key}, nil
}

func (s *aesGCMEncryptionService) Encrypt(plainText []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher block: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM cipher: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plainText, nil), nil
}

func (s *aesGCMEncryptionService) Decrypt(cipherText []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher block: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM cipher: %w", err)
	}

	if len(cipherText) < gcm.NonceSize() {
		return nil, errors.New("ciphertext shorter than nonce")
	}
	nonce, sealed := cipherText[:gcm.NonceSize()], cipherText[gcm.NonceSize():]

	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plain, nil
}

var _ interfaces.EncryptionService = (*aesGCMEncryptionService)(nil)
