// File: backend/services/account-security-service/internal/infrastructure/security/tokens_test.go
package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(VerificationTokenBytes)
	require.NoError(t, err)
	assert.Len(t, token, 2*VerificationTokenBytes)

	other, err := GenerateSecureToken(VerificationTokenBytes)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestHashToken_DeterministicAndOpaque(t *testing.T) {
	hash := HashToken("my-token")
	assert.Equal(t, HashToken("my-token"), hash)
	assert.NotEqual(t, HashToken("my-token2"), hash)
	assert.Len(t, hash, 64) // sha256, hex
	assert.NotContains(t, hash, "my-token")
}

func TestGenerateBackupCode_Format(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := GenerateBackupCode()
		require.NoError(t, err)
		assert.Len(t, code, BackupCodeLength)
		for _, r := range code {
			assert.Contains(t, backupCodeAlphabet, string(r))
		}
		seen[code] = struct{}{}
	}
	// 100 draws from a 36^8 space collide with negligible probability.
	assert.Len(t, seen, 100)
}
