// File: backend/services/account-security-service/internal/service/mocks_test.go
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/models"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/events"
)

// passthroughTxManager runs the function without a real transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// capturePublisher records published event types for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []events.EventType
}

func (p *capturePublisher) Publish(_ context.Context, eventType events.EventType, _ string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) published() []events.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.EventType(nil), p.events...)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockUserRepository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	return m.Called(ctx, id, email).Error(0)
}

func (m *MockUserRepository) SetMFAEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	return m.Called(ctx, id, enabled).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Create(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

func (m *MockSessionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Session, error) {
	args := m.Called(ctx, userID)
	sessions, _ := args.Get(0).([]*models.Session)
	return sessions, args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockVerificationTokenRepository struct{ mock.Mock }

func (m *MockVerificationTokenRepository) Upsert(ctx context.Context, token *models.VerificationToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockVerificationTokenRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.VerificationToken, error) {
	args := m.Called(ctx, identifier)
	token, _ := args.Get(0).(*models.VerificationToken)
	return token, args.Error(1)
}

func (m *MockVerificationTokenRepository) DeleteByIdentifierAndHash(ctx context.Context, identifier, tokenHash string) (bool, error) {
	args := m.Called(ctx, identifier, tokenHash)
	return args.Bool(0), args.Error(1)
}

func (m *MockVerificationTokenRepository) DeleteByIdentifier(ctx context.Context, identifier string) (int64, error) {
	args := m.Called(ctx, identifier)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVerificationTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockMFASecretRepository struct{ mock.Mock }

func (m *MockMFASecretRepository) Upsert(ctx context.Context, secret *models.MFASecret) error {
	return m.Called(ctx, secret).Error(0)
}

func (m *MockMFASecretRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.MFASecret, error) {
	args := m.Called(ctx, userID)
	secret, _ := args.Get(0).(*models.MFASecret)
	return secret, args.Error(1)
}

func (m *MockMFASecretRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMFASecretRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockMFABackupCodeRepository struct{ mock.Mock }

func (m *MockMFABackupCodeRepository) CreateBatch(ctx context.Context, codes []*models.MFABackupCode) error {
	return m.Called(ctx, codes).Error(0)
}

func (m *MockMFABackupCodeRepository) Consume(ctx context.Context, userID uuid.UUID, codeHash string, usedAt time.Time) (bool, error) {
	args := m.Called(ctx, userID, codeHash, usedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockMFABackupCodeRepository) CountUnused(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockMFABackupCodeRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockPrivacySettingsRepository struct{ mock.Mock }

func (m *MockPrivacySettingsRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.PrivacySettings, error) {
	args := m.Called(ctx, userID)
	settings, _ := args.Get(0).(*models.PrivacySettings)
	return settings, args.Error(1)
}

func (m *MockPrivacySettingsRepository) Upsert(ctx context.Context, settings *models.PrivacySettings) error {
	return m.Called(ctx, settings).Error(0)
}

func (m *MockPrivacySettingsRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockNotificationSettingsRepository struct{ mock.Mock }

func (m *MockNotificationSettingsRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.NotificationSettings, error) {
	args := m.Called(ctx, userID)
	settings, _ := args.Get(0).(*models.NotificationSettings)
	return settings, args.Error(1)
}

func (m *MockNotificationSettingsRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockLoginHistoryRepository struct{ mock.Mock }

func (m *MockLoginHistoryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*models.LoginEvent, error) {
	args := m.Called(ctx, userID)
	eventsList, _ := args.Get(0).([]*models.LoginEvent)
	return eventsList, args.Error(1)
}

func (m *MockLoginHistoryRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockBillingRepository struct{ mock.Mock }

func (m *MockBillingRepository) FindSubscriptionsByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Subscription, error) {
	args := m.Called(ctx, userID)
	subs, _ := args.Get(0).([]*models.Subscription)
	return subs, args.Error(1)
}

func (m *MockBillingRepository) FindInvoicesBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) ([]*models.Invoice, error) {
	args := m.Called(ctx, subscriptionID)
	invoices, _ := args.Get(0).([]*models.Invoice)
	return invoices, args.Error(1)
}

func (m *MockBillingRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockNotificationService struct{ mock.Mock }

func (m *MockNotificationService) SendEmailChangeVerification(ctx context.Context, newEmail, token string) error {
	return m.Called(ctx, newEmail, token).Error(0)
}
