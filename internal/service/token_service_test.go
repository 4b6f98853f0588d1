// File: backend/services/account-security-service/internal/service/token_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/errors"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/models"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/infrastructure/security"
)

func newTokenService(repo *MockVerificationTokenRepository) *VerificationTokenService {
	return NewVerificationTokenService(repo, zap.NewNop())
}

func TestVerificationTokenService_Issue_StoresHashNotPlaintext(t *testing.T) {
	repo := new(MockVerificationTokenRepository)
	svc := newTokenService(repo)

	var stored *models.VerificationToken
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("*models.VerificationToken")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.VerificationToken)
		}).
		Return(nil).Once()

	plain, err := svc.Issue(context.Background(), "new@example.com", time.Hour)
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Len(t, plain, 64) // 32 random bytes, hex-encoded
	assert.Equal(t, "new@example.com", stored.Identifier)
	assert.Equal(t, security.HashToken(plain), stored.TokenHash)
	assert.NotEqual(t, plain, stored.TokenHash)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), stored.ExpiresAt, 5*time.Second)
	repo.AssertExpectations(t)
}

func TestVerificationTokenService_Issue_EmptyIdentifier(t *testing.T) {
	repo := new(MockVerificationTokenRepository)
	svc := newTokenService(repo)

	_, err := svc.Issue(context.Background(), "", time.Hour)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidRequest)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestVerificationTokenService_Consume_Valid(t *testing.T) {
	repo := new(MockVerificationTokenRepository)
	svc := newTokenService(repo)

	plain := "sometoken"
	hash := security.HashToken(plain)
	repo.On("FindByIdentifier", mock.Anything, "new@example.com").Return(&models.VerificationToken{
		Identifier: "new@example.com",
		TokenHash:  hash,
		ExpiresAt:  time.Now().UTC().Add(time.Hour),
	}, nil).Once()
	repo.On("DeleteByIdentifierAndHash", mock.Anything, "new@example.com", hash).Return(true, nil).Once()

	result, err := svc.Consume(context.Background(), "new@example.com", plain)
	require.NoError(t, err)
	assert.Equal(t, models.TokenValid, result)
	repo.AssertExpectations(t)
}

func TestVerificationTokenService_Consume_Mismatch(t *testing.T) {
	repo := new(MockVerificationTokenRepository)
	svc := newTokenService(repo)

	repo.On("FindByIdentifier", mock.Anything, "new@example.com").Return(&models.VerificationToken{
		Identifier: "new@example.com",
		TokenHash:  security.HashToken("the-real-token"),
		ExpiresAt:  time.Now().UTC().Add(time.Hour),
	}, nil).Once()

	result, err := svc.Consume(context.Background(), "new@example.com", "a-guess")
	require.NoError(t, err)
	assert.Equal(t, models.TokenMismatch, result)
	repo.AssertNotCalled(t, "DeleteByIdentifierAndHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerificationTokenService_Consume_Expired(t *testing.T) {
	repo := new(MockVerificationTokenRepository)
	svc := newTokenService(repo)

	plain := "sometoken"
	repo.On("FindByIdentifier", mock.Anything, "new@example.com").Return(&models.VerificationToken{
		Identifier: "new@example.com",
		TokenHash:  security.HashToken(plain),
		ExpiresAt:  time.Now().UTC().Add(-time.Minute),
	}, nil).Once()

	result, err := svc.Consume(context.Background(), "new@example.com", plain)
	require.NoError(t, err)
	assert.Equal(t, models.TokenExpired, result)
	repo.AssertNotCalled(t, "DeleteByIdentifierAndHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerificationTokenService_Consume_NeverIssued(t *testing.T) {
	repo := new(MockVerificationTokenRepository)
	svc := newTokenService(repo)

	repo.On("FindByIdentifier", mock.Anything, "nobody@example.com").
		Return(nil, domainErrors.ErrNotFound).Once()

	result, err := svc.Consume(context.Background(), "nobody@example.com", "whatever")
	require.NoError(t, err)
	assert.Equal(t, models.TokenNotFound, result)
}

func TestVerificationTokenService_Consume_LostRace(t *testing.T) {
	repo := new(MockVerificationTokenRepository)
	svc := newTokenService(repo)

	plain := "sometoken"
	hash := security.HashToken(plain)
	repo.On("FindByIdentifier", mock.Anything, "new@example.com").Return(&models.VerificationToken{
		Identifier: "new@example.com",
		TokenHash:  hash,
		ExpiresAt:  time.Now().UTC().Add(time.Hour),
	}, nil).Once()
	// A concurrent consumer deleted the row between the read and the delete.
	repo.On("DeleteByIdentifierAndHash", mock.Anything, "new@example.com", hash).Return(false, nil).Once()

	result, err := svc.Consume(context.Background(), "new@example.com", plain)
	require.NoError(t, err)
	assert.Equal(t, models.TokenNotFound, result)
}

func TestVerificationTokenService_CleanupExpired(t *testing.T) {
	repo := new(MockVerificationTokenRepository)
	svc := newTokenService(repo)

	repo.On("DeleteExpired", mock.Anything).Return(int64(3), nil).Once()

	removed, err := svc.CleanupExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}
