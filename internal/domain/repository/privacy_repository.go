// File: backend/services/account-security-service/internal/domain/repository/privacy_repository.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/models"
)

// PrivacySettingsRepository defines data access for per-user privacy flags.
type PrivacySettingsRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.PrivacySettings, error)
	Upsert(ctx context.Context, settings *models.PrivacySettings) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

// NotificationSettingsRepository defines data access for delivery-channel flags.
type NotificationSettingsRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.NotificationSettings, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

// LoginHistoryRepository reads and cascade-deletes login events recorded by
// the surrounding platform.
type LoginHistoryRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*models.LoginEvent, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

// BillingRepository reads and cascade-deletes subscriptions and invoices.
type BillingRepository interface {
	FindSubscriptionsByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Subscription, error)
	FindInvoicesBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) ([]*models.Invoice, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}
