// File: backend/services/account-security-service/internal/domain/repository/mfa_repository.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/models"
)

// MFASecretRepository defines data access for TOTP secrets. At most one row
// exists per user; an unverified row is a pending enrollment.
type MFASecretRepository interface {
	// Upsert replaces the user's secret row. Used at enrollment initiation,
	// where re-initiating discards the previous pending secret.
	Upsert(ctx context.Context, secret *models.MFASecret) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.MFASecret, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

// MFABackupCodeRepository defines data access for backup codes.
type MFABackupCodeRepository interface {
	CreateBatch(ctx context.Context, codes []*models.MFABackupCode) error
	// Consume marks the unused code with the given hash as used and reports
	// whether a code was consumed. Single statement; reuse loses.
	Consume(ctx context.Context, userID uuid.UUID, codeHash string, usedAt time.Time) (bool, error)
	CountUnused(ctx context.Context, userID uuid.UUID) (int, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}
