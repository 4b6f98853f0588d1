// File: backend/services/account-security-service/internal/repository/postgres/privacy_settings_repository.go
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

// PrivacySettingsRepositoryPostgres implements repository.PrivacySettingsRepository.
type PrivacySettingsRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewPrivacySettingsRepositoryPostgres creates a new instance.
func NewPrivacySettingsRepositoryPostgres(pool *pgxpool.Pool) *PrivacySettingsRepositoryPostgres {
	return &PrivacySettingsRepositoryPostgres{pool: pool}
}

// FindByUserID retrieves the user's privacy settings.
func (r *PrivacySettingsRepositoryPostgres) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.PrivacySettings, error) {
	query := `
		SELECT user_id, profile_visibility, data_sharing, analytics_enabled,
		       cookies_accepted, cookies_accepted_at, updated_at
		FROM privacy_settings
		WHERE user_id = $1
	`
	s := &models.PrivacySettings{}
	err := queryEngine(ctx, r.pool).QueryRow(ctx, query, userID).Scan(
		&s.UserID, &s.ProfileVisibility, &s.DataSharing, &s.AnalyticsEnabled,
		&s.CookiesAccepted, &s.CookiesAcceptedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find privacy settings: %w", err)
	}
	return s, nil
}

// Upsert writes the user's privacy settings, creating the row on first save.
func (r *PrivacySettingsRepositoryPostgres) Upsert(ctx context.Context, settings *models.PrivacySettings) error {
	query := `
		INSERT INTO privacy_settings
			(user_id, profile_visibility, data_sharing, analytics_enabled,
			 cookies_accepted, cookies_accepted_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET profile_visibility = EXCLUDED.profile_visibility,
		    data_sharing = EXCLUDED.data_sharing,
		    analytics_enabled = EXCLUDED.analytics_enabled,
		    cookies_accepted = EXCLUDED.cookies_accepted,
		    cookies_accepted_at = EXCLUDED.cookies_accepted_at,
		    updated_at = NOW()
	`
	_, err := queryEngine(ctx, r.pool).Exec(ctx, query,
		settings.UserID, settings.ProfileVisibility, settings.DataSharing,
		settings.AnalyticsEnabled, settings.CookiesAccepted, settings.CookiesAcceptedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert privacy settings: %w", err)
	}
	return nil
}

// DeleteByUserID removes the user's privacy settings row.
func (r *PrivacySettingsRepositoryPostgres) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM privacy_settings WHERE user_id = $1`
	result, err := queryEngine(ctx, r.pool).Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete privacy settings: %w", err)
	}
	return result.RowsAffected(), nil
}

var _ repository.PrivacySettingsRepository = (*PrivacySettingsRepositoryPostgres)(nil)
