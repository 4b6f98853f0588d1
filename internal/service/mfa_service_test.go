// File: backend/services/account-security-service/internal/service/mfa_service_test.go
package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/errors"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/models"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/events"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/infrastructure/security"
)

const testEncryptionKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

type mfaServiceFixture struct {
	svc            *MFAService
	userRepo       *MockUserRepository
	secretRepo     *MockMFASecretRepository
	backupCodeRepo *MockMFABackupCodeRepository
	publisher      *capturePublisher
}

func newMFAServiceFixture(t *testing.T) *mfaServiceFixture {
	t.Helper()

	encryption, err := security.NewAESGCMEncryptionService(testEncryptionKeyHex)
	require.NoError(t, err)
	passwords, err := security.NewArgon2idPasswordService(security.DefaultArgon2idParams())
	require.NoError(t, err)

	f := &mfaServiceFixture{
		userRepo:       new(MockUserRepository),
		secretRepo:     new(MockMFASecretRepository),
		backupCodeRepo: new(MockMFABackupCodeRepository),
		publisher:      &capturePublisher{},
	}
	f.svc = NewMFAService(MFAServiceConfig{
		UserRepo:        f.userRepo,
		SecretRepo:      f.secretRepo,
		BackupCodeRepo:  f.backupCodeRepo,
		TOTPService:     security.NewTOTPService("TestPlatform"),
		Encryption:      encryption,
		PasswordService: passwords,
		TxManager:       passthroughTxManager{},
		Publisher:       f.publisher,
		Logger:          zap.NewNop(),
		BackupCodeCount: 10,
	})
	return f
}

func (f *mfaServiceFixture) encrypt(t *testing.T, secretB32 string) []byte {
	t.Helper()
	encryption, err := security.NewAESGCMEncryptionService(testEncryptionKeyHex)
	require.NoError(t, err)
	out, err := encryption.Encrypt([]byte(secretB32))
	require.NoError(t, err)
	return out
}

func TestMFAService_BeginEnrollment_Success(t *testing.T) {
	f := newMFAServiceFixture(t)
	userID := uuid.New()

	f.userRepo.On("FindByID", mock.Anything, userID).
		Return(&models.User{ID: userID, Email: "user@example.com"}, nil).Once()

	var stored *models.MFASecret
	f.secretRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*models.MFASecret")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.MFASecret)
		}).
		Return(nil).Once()

	resp, err := f.svc.BeginEnrollment(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.NotEmpty(t, resp.Secret)
	assert.Contains(t, resp.QRCodeURL, "otpauth://totp/")
	assert.Contains(t, resp.QRCodeURL, "user@example.com")
	assert.False(t, stored.Verified)
	// The stored ciphertext must not contain the base32 secret.
	assert.NotContains(t, string(stored.SecretEncrypted), resp.Secret)
	f.secretRepo.AssertExpectations(t)
}

func TestMFAService_BeginEnrollment_AlreadyEnabled(t *testing.T) {
	f := newMFAServiceFixture(t)
	userID := uuid.New()

	f.userRepo.On("FindByID", mock.Anything, userID).
		Return(&models.User{ID: userID, Email: "user@example.com", MFAEnabled: true}, nil).Once()

	_, err := f.svc.BeginEnrollment(context.Background(), userID)
	assert.ErrorIs(t, err, domainErrors.Err2FAAlreadyEnabled)
	f.secretRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestMFAService_ConfirmEnrollment_Success(t *testing.T) {
	f := newMFAServiceFixture(t)
	userID := uuid.New()

	totpSvc := security.NewTOTPService("TestPlatform")
	secretB32, _, err := totpSvc.GenerateSecret("user@example.com")
	require.NoError(t, err)
	code, err := totp.GenerateCode(secretB32, time.Now())
	require.NoError(t, err)

	pendingID := uuid.New()
	f.userRepo.On("FindByIDForUpdate", mock.Anything, userID).
		Return(&models.User{ID: userID, Email: "user@example.com"}, nil).Once()
	f.secretRepo.On("FindByUserID", mock.Anything, userID).Return(&models.MFASecret{
		ID:              pendingID,
		UserID:          userID,
		SecretEncrypted: f.encrypt(t, secretB32),
		Verified:        false,
	}, nil).Once()
	f.secretRepo.On("MarkVerified", mock.Anything, pendingID).Return(nil).Once()
	f.userRepo.On("SetMFAEnabled", mock.Anything, userID, true).Return(nil).Once()
	f.backupCodeRepo.On("DeleteByUserID", mock.Anything, userID).Return(int64(0), nil).Once()

	var storedCodes []*models.MFABackupCode
	f.backupCodeRepo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]*models.MFABackupCode")).
		Run(func(args mock.Arguments) {
			storedCodes = args.Get(1).([]*models.MFABackupCode)
		}).
		Return(nil).Once()

	resp, err := f.svc.ConfirmEnrollment(context.Background(), userID, secretB32, code)
	require.NoError(t, err)

	require.Len(t, resp.BackupCodes, 10)
	require.Len(t, storedCodes, 10)
	unique := make(map[string]struct{})
	for i, plain := range resp.BackupCodes {
		unique[plain] = struct{}{}
		assert.Len(t, plain, security.BackupCodeLength)
		assert.Equal(t, strings.ToUpper(plain), plain)
		// Only the hash reaches storage.
		assert.Equal(t, security.HashToken(plain), storedCodes[i].CodeHash)
	}
	assert.Len(t, unique, 10)
	assert.Contains(t, f.publisher.published(), events.EventMFAEnabled)
	f.secretRepo.AssertExpectations(t)
	f.backupCodeRepo.AssertExpectations(t)
}

func TestMFAService_ConfirmEnrollment_InvalidCode(t *testing.T) {
	f := newMFAServiceFixture(t)
	userID := uuid.New()

	totpSvc := security.NewTOTPService("TestPlatform")
	secretB32, _, err := totpSvc.GenerateSecret("user@example.com")
	require.NoError(t, err)

	f.userRepo.On("FindByIDForUpdate", mock.Anything, userID).
		Return(&models.User{ID: userID, Email: "user@example.com"}, nil).Once()
	f.secretRepo.On("FindByUserID", mock.Anything, userID).Return(&models.MFASecret{
		ID:              uuid.New(),
		UserID:          userID,
		SecretEncrypted: f.encrypt(t, secretB32),
		Verified:        false,
	}, nil).Once()

	_, err = f.svc.ConfirmEnrollment(context.Background(), userID, secretB32, "000000")
	assert.ErrorIs(t, err, domainErrors.ErrInvalid2FACode)
	f.secretRepo.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything)
	f.userRepo.AssertNotCalled(t, "SetMFAEnabled", mock.Anything, mock.Anything, mock.Anything)
}

func TestMFAService_ConfirmEnrollment_SecretNotTracked(t *testing.T) {
	f := newMFAServiceFixture(t)
	userID := uuid.New()

	totpSvc := security.NewTOTPService("TestPlatform")
	pendingSecret, _, err := totpSvc.GenerateSecret("user@example.com")
	require.NoError(t, err)
	attackerSecret, _, err := totpSvc.GenerateSecret("user@example.com")
	require.NoError(t, err)
	code, err := totp.GenerateCode(attackerSecret, time.Now())
	require.NoError(t, err)

	f.userRepo.On("FindByIDForUpdate", mock.Anything, userID).
		Return(&models.User{ID: userID, Email: "user@example.com"}, nil).Once()
	f.secretRepo.On("FindByUserID", mock.Anything, userID).Return(&models.MFASecret{
		ID:              uuid.New(),
		UserID:          userID,
		SecretEncrypted: f.encrypt(t, pendingSecret),
		Verified:        false,
	}, nil).Once()

	// A valid code against a secret the server never issued must not activate.
	_, err = f.svc.ConfirmEnrollment(context.Background(), userID, attackerSecret, code)
	assert.ErrorIs(t, err, domainErrors.ErrEnrollmentExpired)
	f.secretRepo.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything)
}

func TestMFAService_ConfirmEnrollment_NoPendingEnrollment(t *testing.T) {
	f := newMFAServiceFixture(t)
	userID := uuid.New()

	f.userRepo.On("FindByIDForUpdate", mock.Anything, userID).
		Return(&models.User{ID: userID, Email: "user@example.com"}, nil).Once()
	f.secretRepo.On("FindByUserID", mock.Anything, userID).
		Return(nil, domainErrors.ErrNotFound).Once()

	_, err := f.svc.ConfirmEnrollment(context.Background(), userID, "IRRELEVANT", "123456")
	assert.ErrorIs(t, err, domainErrors.ErrEnrollmentExpired)
}

func TestMFAService_ConsumeBackupCode_Success(t *testing.T) {
	f := newMFAServiceFixture(t)
	userID := uuid.New()
	code := "ABCD1234"

	f.userRepo.On("FindByID", mock.Anything, userID).
		Return(&models.User{ID: userID, MFAEnabled: true}, nil).Once()
	f.backupCodeRepo.On("Consume", mock.Anything, userID, security.HashToken(code), mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()
	f.backupCodeRepo.On("CountUnused", mock.Anything, userID).Return(9, nil).Once()

	err := f.svc.ConsumeBackupCode(context.Background(), userID, code)
	require.NoError(t, err)
	assert.Contains(t, f.publisher.published(), events.EventBackupCodeUsed)
}

func TestMFAService_ConsumeBackupCode_AlreadyUsed(t *testing.T) {
	f := newMFAServiceFixture(t)
	userID := uuid.New()
	code := "ABCD1234"

	f.userRepo.On("FindByID", mock.Anything, userID).
		Return(&models.User{ID: userID, MFAEnabled: true}, nil).Once()
	f.backupCodeRepo.On("Consume", mock.Anything, userID, security.HashToken(code), mock.AnythingOfType("time.Time")).
		Return(false, nil).Once()

	err := f.svc.ConsumeBackupCode(context.Background(), userID, code)
	assert.ErrorIs(t, err, domainErrors.ErrInvalid2FACode)
	assert.Empty(t, f.publisher.published())
}

func TestMFAService_ConsumeBackupCode_MFANotEnabled(t *testing.T) {
	f := newMFAServiceFixture(t)
	userID := uuid.New()

	f.userRepo.On("FindByID", mock.Anything, userID).
		Return(&models.User{ID: userID, MFAEnabled: false}, nil).Once()

	err := f.svc.ConsumeBackupCode(context.Background(), userID, "ABCD1234")
	assert.ErrorIs(t, err, domainErrors.Err2FANotEnabled)
	f.backupCodeRepo.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMFAService_DisableMFA_Success(t *testing.T) {
	f := newMFAServiceFixture(t)
	userID := uuid.New()

	passwords, err := security.NewArgon2idPasswordService(security.DefaultArgon2idParams())
	require.NoError(t, err)
	hash, err := passwords.HashPassword("correct horse")
	require.NoError(t, err)

	f.userRepo.On("FindByIDForUpdate", mock.Anything, userID).
		Return(&models.User{ID: userID, MFAEnabled: true, PasswordHash: &hash}, nil).Once()
	f.secretRepo.On("DeleteByUserID", mock.Anything, userID).Return(int64(1), nil).Once()
	f.backupCodeRepo.On("DeleteByUserID", mock.Anything, userID).Return(int64(10), nil).Once()
	f.userRepo.On("SetMFAEnabled", mock.Anything, userID, false).Return(nil).Once()

	err = f.svc.DisableMFA(context.Background(), userID, "correct horse")
	require.NoError(t, err)
	assert.Contains(t, f.publisher.published(), events.EventMFADisabled)
	f.userRepo.AssertExpectations(t)
}

func TestMFAService_DisableMFA_WrongPassword(t *testing.T) {
	f := newMFAServiceFixture(t)
	userID := uuid.New()

	passwords, err := security.NewArgon2idPasswordService(security.DefaultArgon2idParams())
	require.NoError(t, err)
	hash, err := passwords.HashPassword("correct horse")
	require.NoError(t, err)

	f.userRepo.On("FindByIDForUpdate", mock.Anything, userID).
		Return(&models.User{ID: userID, MFAEnabled: true, PasswordHash: &hash}, nil).Once()

	err = f.svc.DisableMFA(context.Background(), userID, "battery staple")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
	f.secretRepo.AssertNotCalled(t, "DeleteByUserID", mock.Anything, mock.Anything)
	f.userRepo.AssertNotCalled(t, "SetMFAEnabled", mock.Anything, mock.Anything, mock.Anything)
}

func TestMFAService_DisableMFA_NotEnabled(t *testing.T) {
	f := newMFAServiceFixture(t)
	userID := uuid.New()

	f.userRepo.On("FindByIDForUpdate", mock.Anything, userID).
		Return(&models.User{ID: userID, MFAEnabled: false}, nil).Once()

	err := f.svc.DisableMFA(context.Background(), userID, "whatever")
	assert.ErrorIs(t, err, domainErrors.Err2FANotEnabled)
}
