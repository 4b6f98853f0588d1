// File: backend/services/account-security-service/internal/infrastructure/security/totp_service.go
package security

import (
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/interfaces"
)

// pquernaTOTPService implements interfaces.TOTPService using pquerna/otp.
type pquernaTOTPService struct {
	issuerName string
}

// NewTOTPService creates a TOTPService. issuerName labels the provisioning URI
// in authenticator apps.
func NewTOTPService(issuerName string) interfaces.TOTPService {
	if strings.TrimSpace(issuerName) == "" {
		issuerName = "GamingPlatform"
	}
	return &pquernaTOTPService{issuerName: issuerName}
}

// GenerateSecret creates a new TOTP secret and its otpauth:// URI.
func (s *pquernaTOTPService) GenerateSecret(accountName string) (string, string, error) {
	if strings.TrimSpace(accountName) == "" {
		return "", "", fmt.Errorf("accountName cannot be empty for TOTP secret generation")
	}
	if strings.Contains(accountName, ":") || strings.Contains(s.issuerName, ":") {
		// The otpauth label separator is a colon.
		return "", "", fmt.Errorf("accountName and issuer must not contain a colon")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuerName,
		AccountName: accountName,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
		SecretSize:  20,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate TOTP key: %w", err)
	}
	return key.Secret(), key.URL(), nil
}

// ValidateCode checks the code against the secret with a skew of one
// 30-second step either side to absorb clock drift.
func (s *pquernaTOTPService) ValidateCode(secretB32, code string) (bool, error) {
	if strings.TrimSpace(secretB32) == "" {
		return false, fmt.Errorf("secret cannot be empty")
	}
	if strings.TrimSpace(code) == "" {
		return false, fmt.Errorf("code cannot be empty")
	}

	valid, err := totp.ValidateCustom(code, secretB32, time.Now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return false, fmt.Errorf("error during TOTP code validation: %w", err)
	}
	return valid, nil
}

var _ interfaces.TOTPService = (*pquernaTOTPService)(nil)
