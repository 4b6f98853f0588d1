// File: backend/services/account-security-service/internal/infrastructure/security/encryption_service_test.go
package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestAESGCMEncryptionService_RoundTrip(t *testing.T) {
	svc, err := NewAESGCMEncryptionService(testKeyHex)
	require.NoError(t, err)

	plain := []byte("JBSWY3DPEHPK3PXP")
	cipher, err := svc.Encrypt(plain)
	require.NoError(t, err)
	assert.NotContains(t, string(cipher), string(plain))

	got, err := svc.Decrypt(cipher)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestAESGCMEncryptionService_NonceVaries(t *testing.T) {
	svc, err := NewAESGCMEncryptionService(testKeyHex)
	require.NoError(t, err)

	first, err := svc.Encrypt([]byte("same plaintext"))
	require.NoError(t, err)
	second, err := svc.Encrypt([]byte("same plaintext"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestAESGCMEncryptionService_TamperDetected(t *testing.T) {
	svc, err := NewAESGCMEncryptionService(testKeyHex)
	require.NoError(t, err)

	cipher, err := svc.Encrypt([]byte("JBSWY3DPEHPK3PXP"))
	require.NoError(t, err)

	cipher[len(cipher)-1] ^= 0xff
	_, err = svc.Decrypt(cipher)
	assert.Error(t, err)
}

func TestNewAESGCMEncryptionService_RejectsBadKeys(t *testing.T) {
	_, err := NewAESGCMEncryptionService("")
	assert.Error(t, err)

	_, err = NewAESGCMEncryptionService("abcd") // too short
	assert.Error(t, err)

	_, err = NewAESGCMEncryptionService("zz0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	assert.Error(t, err)
}
