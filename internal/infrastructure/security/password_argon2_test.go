// File: backend/services/account-security-service/internal/infrastructure/security/password_argon2_test.go
package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2idPasswordService_HashAndVerify(t *testing.T) {
	svc, err := NewArgon2idPasswordService(DefaultArgon2idParams())
	require.NoError(t, err)

	hash, err := svc.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	assert.NotContains(t, hash, "correct horse battery staple")

	match, err := svc.CheckPasswordHash("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = svc.CheckPasswordHash("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestArgon2idPasswordService_HashesAreSalted(t *testing.T) {
	svc, err := NewArgon2idPasswordService(DefaultArgon2idParams())
	require.NoError(t, err)

	first, err := svc.HashPassword("same password")
	require.NoError(t, err)
	second, err := svc.HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArgon2idPasswordService_MalformedHash(t *testing.T) {
	svc, err := NewArgon2idPasswordService(DefaultArgon2idParams())
	require.NoError(t, err)

	_, err = svc.CheckPasswordHash("anything", "not-an-encoded-hash")
	assert.Error(t, err)
}

func TestNewArgon2idPasswordService_RejectsZeroParams(t *testing.T) {
	_, err := NewArgon2idPasswordService(Argon2idParams{})
	assert.Error(t, err)
}
