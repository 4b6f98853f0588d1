// File: backend/services/account-security-service/internal/infrastructure/security/totp_service_test.go
package security

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOTPService_GenerateSecret(t *testing.T) {
	svc := NewTOTPService("GamingPlatform")

	secret, url, err := svc.GenerateSecret("user@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, secret)
	assert.Contains(t, url, "otpauth://totp/")
	assert.Contains(t, url, "GamingPlatform")
	assert.Contains(t, url, "user@example.com")
}

func TestTOTPService_GenerateSecret_RejectsBadAccountNames(t *testing.T) {
	svc := NewTOTPService("GamingPlatform")

	_, _, err := svc.GenerateSecret("")
	assert.Error(t, err)

	_, _, err = svc.GenerateSecret("user:colon@example.com")
	assert.Error(t, err)
}

func TestTOTPService_ValidateCode(t *testing.T) {
	svc := NewTOTPService("GamingPlatform")
	secret, _, err := svc.GenerateSecret("user@example.com")
	require.NoError(t, err)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	valid, err := svc.ValidateCode(secret, code)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = svc.ValidateCode(secret, "000000")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestTOTPService_ValidateCode_AdjacentStep(t *testing.T) {
	svc := NewTOTPService("GamingPlatform")
	secret, _, err := svc.GenerateSecret("user@example.com")
	require.NoError(t, err)

	// One step of clock drift in either direction is tolerated.
	previous, err := totp.GenerateCode(secret, time.Now().Add(-30*time.Second))
	require.NoError(t, err)
	valid, err := svc.ValidateCode(secret, previous)
	require.NoError(t, err)
	assert.True(t, valid)

	next, err := totp.GenerateCode(secret, time.Now().Add(30*time.Second))
	require.NoError(t, err)
	valid, err = svc.ValidateCode(secret, next)
	require.NoError(t, err)
	assert.True(t, valid)
}
