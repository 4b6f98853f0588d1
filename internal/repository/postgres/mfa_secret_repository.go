// File: backend/services/account-security-service/internal/repository/postgres/mfa_secret_repository.go
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

// MFASecretRepositoryPostgres implements repository.MFASecretRepository.
type MFASecretRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewMFASecretRepositoryPostgres creates a new instance.
func NewMFASecretRepositoryPostgres(pool *pgxpool.Pool) *MFASecretRepositoryPostgres {
	return &MFASecretRepositoryPostgres{pool: pool}
}

// Upsert replaces the user's secret row. The unique constraint on user_id
// makes re-initiating an enrollment discard the previous pending secret.
func (r *MFASecretRepositoryPostgres) Upsert(ctx context.Context, secret *models.MFASecret) error {
	query := `
		INSERT INTO mfa_secrets (id, user_id, secret_encrypted, verified, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET id = EXCLUDED.id,
		    secret_encrypted = EXCLUDED.secret_encrypted,
		    verified = EXCLUDED.verified,
		    created_at = EXCLUDED.created_at
	`
	_, err := queryEngine(ctx, r.pool).Exec(ctx, query,
		secret.ID, secret.UserID, secret.SecretEncrypted, secret.Verified, secret.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert MFA secret: %w", err)
	}
	return nil
}

// FindByUserID retrieves the user's secret row, pending or verified.
func (r *MFASecretRepositoryPostgres) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.MFASecret, error) {
	query := `
		SELECT id, user_id, secret_encrypted, verified, created_at
		FROM mfa_secrets
		WHERE user_id = $1
	`
	s := &models.MFASecret{}
	err := queryEngine(ctx, r.pool).QueryRow(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.SecretEncrypted, &s.Verified, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find MFA secret by user ID: %w", err)
	}
	return s, nil
}

// MarkVerified flips the secret row to verified.
func (r *MFASecretRepositoryPostgres) MarkVerified(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE mfa_secrets SET verified = TRUE WHERE id = $1`
	result, err := queryEngine(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark MFA secret verified: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes the user's secret row and returns the count.
func (r *MFASecretRepositoryPostgres) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM mfa_secrets WHERE user_id = $1`
	result, err := queryEngine(ctx, r.pool).Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete MFA secrets by user ID: %w", err)
	}
	return result.RowsAffected(), nil
}

var _ repository.MFASecretRepository = (*MFASecretRepositoryPostgres)(nil)
