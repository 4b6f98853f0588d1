// File: backend/services/account-security-service/internal/repository/postgres/mfa_backup_code_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/models"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/repository"
)

// MFABackupCodeRepositoryPostgres implements repository.MFABackupCodeRepository.
type MFABackupCodeRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewMFABackupCodeRepositoryPostgres creates a new instance.
func NewMFABackupCodeRepositoryPostgres(pool *pgxpool.Pool) *MFABackupCodeRepositoryPostgres {
	return &MFABackupCodeRepositoryPostgres{pool: pool}
}

// CreateBatch persists a set of backup code hashes.
func (r *MFABackupCodeRepositoryPostgres) CreateBatch(ctx context.Context, codes []*models.MFABackupCode) error {
	query := `
		INSERT INTO mfa_backup_codes (id, user_id, code_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`
	q := queryEngine(ctx, r.pool)
	for _, code := range codes {
		if _, err := q.Exec(ctx, query, code.ID, code.UserID, code.CodeHash, code.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert backup code: %w", err)
		}
	}
	return nil
}

// Consume marks the matching unused code as used in one statement, so a code
// can authorize at most one action even under concurrent attempts.
func (r *MFABackupCodeRepositoryPostgres) Consume(ctx context.Context, userID uuid.UUID, codeHash string, usedAt time.Time) (bool, error) {
	query := `
		UPDATE mfa_backup_codes
		SET used_at = $1
		WHERE user_id = $2 AND code_hash = $3 AND used_at IS NULL
	`
	result, err := queryEngine(ctx, r.pool).Exec(ctx, query, usedAt, userID, codeHash)
	if err != nil {
		return false, fmt.Errorf("failed to consume backup code: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// CountUnused counts the user's remaining backup codes.
func (r *MFABackupCodeRepositoryPostgres) CountUnused(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM mfa_backup_codes WHERE user_id = $1 AND used_at IS NULL`
	var count int
	if err := queryEngine(ctx, r.pool).QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unused backup codes: %w", err)
	}
	return count, nil
}

// DeleteByUserID removes all of the user's backup codes and returns the count.
func (r *MFABackupCodeRepositoryPostgres) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM mfa_backup_codes WHERE user_id = $1`
	result, err := queryEngine(ctx, r.pool).Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete backup codes by user ID: %w", err)
	}
	return result.RowsAffected(), nil
}

var _ repository.MFABackupCodeRepository = (*MFABackupCodeRepositoryPostgres)(nil)
