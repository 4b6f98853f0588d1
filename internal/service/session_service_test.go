// File: backend/services/account-security-service/internal/service/session_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/errors"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/models"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/events"
)

func strPtr(s string) *string { return &s }

func TestSessionService_List_DeviceLabels(t *testing.T) {
	repo := new(MockSessionRepository)
	svc := NewSessionService(repo, &capturePublisher{}, zap.NewNop())
	userID := uuid.New()

	chromeUA := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	now := time.Now().UTC()
	repo.On("FindByUserID", mock.Anything, userID).Return([]*models.Session{
		{ID: uuid.New(), UserID: userID, UserAgent: &chromeUA, IPAddress: strPtr("203.0.113.7"), CreatedAt: now, LastSeenAt: now},
		{ID: uuid.New(), UserID: userID, CreatedAt: now.Add(-time.Hour), LastSeenAt: now.Add(-time.Hour)},
	}, nil).Once()

	out, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Chrome on Windows", out[0].Device)
	assert.Equal(t, "Unknown device", out[1].Device)
}

func TestSessionService_List_Empty(t *testing.T) {
	repo := new(MockSessionRepository)
	svc := NewSessionService(repo, &capturePublisher{}, zap.NewNop())
	userID := uuid.New()

	repo.On("FindByUserID", mock.Anything, userID).Return([]*models.Session{}, nil).Once()

	out, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestSessionService_Revoke_Owned(t *testing.T) {
	repo := new(MockSessionRepository)
	publisher := &capturePublisher{}
	svc := NewSessionService(repo, publisher, zap.NewNop())
	userID := uuid.New()
	sessionID := uuid.New()

	repo.On("FindByID", mock.Anything, sessionID).
		Return(&models.Session{ID: sessionID, UserID: userID}, nil).Once()
	repo.On("Delete", mock.Anything, sessionID).Return(nil).Once()

	err := svc.Revoke(context.Background(), userID, sessionID)
	require.NoError(t, err)
	assert.Contains(t, publisher.published(), events.EventSessionRevoked)
	repo.AssertExpectations(t)
}

func TestSessionService_Revoke_NotOwner(t *testing.T) {
	repo := new(MockSessionRepository)
	svc := NewSessionService(repo, &capturePublisher{}, zap.NewNop())
	sessionID := uuid.New()

	repo.On("FindByID", mock.Anything, sessionID).
		Return(&models.Session{ID: sessionID, UserID: uuid.New()}, nil).Once()

	err := svc.Revoke(context.Background(), uuid.New(), sessionID)
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSessionService_Revoke_NotFound(t *testing.T) {
	repo := new(MockSessionRepository)
	svc := NewSessionService(repo, &capturePublisher{}, zap.NewNop())
	sessionID := uuid.New()

	repo.On("FindByID", mock.Anything, sessionID).
		Return(nil, domainErrors.ErrSessionNotFound).Once()

	err := svc.Revoke(context.Background(), uuid.New(), sessionID)
	assert.ErrorIs(t, err, domainErrors.ErrSessionNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSessionService_RevokeAll(t *testing.T) {
	repo := new(MockSessionRepository)
	svc := NewSessionService(repo, &capturePublisher{}, zap.NewNop())
	userID := uuid.New()

	repo.On("DeleteByUserID", mock.Anything, userID).Return(int64(3), nil).Once()

	removed, err := svc.RevokeAll(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}
