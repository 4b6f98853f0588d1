// File: backend/services/account-security-service/internal/domain/repository/verification_token_repository.go
package repository

import (
	"context"

	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/models"
)

// VerificationTokenRepository defines data access for verification tokens.
// The table keys on identifier; Upsert therefore implements last-issued-wins.
type VerificationTokenRepository interface {
	// Upsert atomically replaces any prior token for the identifier.
	Upsert(ctx context.Context, token *models.VerificationToken) error
	FindByIdentifier(ctx context.Context, identifier string) (*models.VerificationToken, error)
	// DeleteByIdentifierAndHash removes the row only if the stored hash still
	// matches, and reports whether a row was deleted. This is the
	// compare-and-consume step: of two concurrent consumers, exactly one wins.
	DeleteByIdentifierAndHash(ctx context.Context, identifier, tokenHash string) (bool, error)
	DeleteByIdentifier(ctx context.Context, identifier string) (int64, error)
	DeleteExpired(ctx context.Context) (int64, error)
}
