// File: backend/services/account-security-service/internal/repository/postgres/account_data_repository.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/errors"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/models"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/repository"
)

// NotificationSettingsRepositoryPostgres implements repository.NotificationSettingsRepository.
type NotificationSettingsRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewNotificationSettingsRepositoryPostgres creates a new instance.
func NewNotificationSettingsRepositoryPostgres(pool *pgxpool.Pool) *NotificationSettingsRepositoryPostgres {
	return &NotificationSettingsRepositoryPostgres{pool: pool}
}

// FindByUserID retrieves the user's notification settings.
func (r *NotificationSettingsRepositoryPostgres) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.NotificationSettings, error) {
	query := `
		SELECT user_id, email_enabled, sms_enabled, push_enabled, updated_at
		FROM notification_settings
		WHERE user_id = $1
	`
	s := &models.NotificationSettings{}
	err := queryEngine(ctx, r.pool).QueryRow(ctx, query, userID).Scan(
		&s.UserID, &s.EmailEnabled, &s.SMSEnabled, &s.PushEnabled, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find notification settings: %w", err)
	}
	return s, nil
}

// DeleteByUserID removes the user's notification settings row.
func (r *NotificationSettingsRepositoryPostgres) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM notification_settings WHERE user_id = $1`
	result, err := queryEngine(ctx, r.pool).Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete notification settings: %w", err)
	}
	return result.RowsAffected(), nil
}

var _ repository.NotificationSettingsRepository = (*NotificationSettingsRepositoryPostgres)(nil)

// LoginHistoryRepositoryPostgres implements repository.LoginHistoryRepository.
type LoginHistoryRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewLoginHistoryRepositoryPostgres creates a new instance.
func NewLoginHistoryRepositoryPostgres(pool *pgxpool.Pool) *LoginHistoryRepositoryPostgres {
	return &LoginHistoryRepositoryPostgres{pool: pool}
}

// FindByUserID returns the user's login events newest-first.
func (r *LoginHistoryRepositoryPostgres) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*models.LoginEvent, error) {
	query := `
		SELECT id, user_id, ip_address, user_agent, success, created_at
		FROM login_history
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := queryEngine(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query login history: %w", err)
	}
	defer rows.Close()

	var events []*models.LoginEvent
	for rows.Next() {
		e := &models.LoginEvent{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.IPAddress, &e.UserAgent, &e.Success, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan login event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate login history: %w", err)
	}
	return events, nil
}

// DeleteByUserID removes the user's login history.
func (r *LoginHistoryRepositoryPostgres) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM login_history WHERE user_id = $1`
	result, err := queryEngine(ctx, r.pool).Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete login history: %w", err)
	}
	return result.RowsAffected(), nil
}

var _ repository.LoginHistoryRepository = (*LoginHistoryRepositoryPostgres)(nil)

// BillingRepositoryPostgres implements repository.BillingRepository.
type BillingRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewBillingRepositoryPostgres creates a new instance.
func NewBillingRepositoryPostgres(pool *pgxpool.Pool) *BillingRepositoryPostgres {
	return &BillingRepositoryPostgres{pool: pool}
}

// FindSubscriptionsByUserID returns the user's subscriptions.
func (r *BillingRepositoryPostgres) FindSubscriptionsByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Subscription, error) {
	query := `
		SELECT id, user_id, plan, status, renews_at
		FROM subscriptions
		WHERE user_id = $1
	`
	rows, err := queryEngine(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		s := &models.Subscription{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Plan, &s.Status, &s.RenewsAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}
	return subs, nil
}

// FindInvoicesBySubscriptionID returns a subscription's invoices.
func (r *BillingRepositoryPostgres) FindInvoicesBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) ([]*models.Invoice, error) {
	query := `
		SELECT id, subscription_id, amount_cents, currency, issued_at
		FROM invoices
		WHERE subscription_id = $1
		ORDER BY issued_at DESC
	`
	rows, err := queryEngine(ctx, r.pool).Query(ctx, query, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv := &models.Invoice{}
		if err := rows.Scan(&inv.ID, &inv.SubscriptionID, &inv.AmountCents, &inv.Currency, &inv.IssuedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoices: %w", err)
	}
	return invoices, nil
}

// DeleteByUserID removes the user's invoices and subscriptions, invoices
// first to satisfy the foreign key.
func (r *BillingRepositoryPostgres) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	q := queryEngine(ctx, r.pool)

	invQuery := `
		DELETE FROM invoices
		WHERE subscription_id IN (SELECT id FROM subscriptions WHERE user_id = $1)
	`
	invResult, err := q.Exec(ctx, invQuery, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete invoices by user ID: %w", err)
	}

	subQuery := `DELETE FROM subscriptions WHERE user_id = $1`
	subResult, err := q.Exec(ctx, subQuery, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete subscriptions by user ID: %w", err)
	}

	return invResult.RowsAffected() + subResult.RowsAffected(), nil
}

var _ repository.BillingRepository = (*BillingRepositoryPostgres)(nil)
