// File: backend/services/account-security-service/internal/repository/postgres/verification_token_repository.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/errors"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/models"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/repository"
)

// VerificationTokenRepositoryPostgres implements repository.VerificationTokenRepository.
type VerificationTokenRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewVerificationTokenRepositoryPostgres creates a new instance.
func NewVerificationTokenRepositoryPostgres(pool *pgxpool.Pool) *VerificationTokenRepositoryPostgres {
	return &VerificationTokenRepositoryPostgres{pool: pool}
}

// Upsert replaces any prior token for the identifier in one statement.
// The primary key on identifier makes issuance last-issued-wins under
// concurrent calls.
func (r *VerificationTokenRepositoryPostgres) Upsert(ctx context.Context, token *models.VerificationToken) error {
	query := `
		INSERT INTO verification_tokens (identifier, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (identifier) DO UPDATE
		SET token_hash = EXCLUDED.token_hash,
		    expires_at = EXCLUDED.expires_at,
		    created_at = EXCLUDED.created_at
	`
	_, err := queryEngine(ctx, r.pool).Exec(ctx, query,
		token.Identifier, token.TokenHash, token.ExpiresAt, token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert verification token: %w", err)
	}
	return nil
}

// FindByIdentifier retrieves the live token for an identifier, expired or not.
// Expiry classification is the caller's concern.
func (r *VerificationTokenRepositoryPostgres) FindByIdentifier(ctx context.Context, identifier string) (*models.VerificationToken, error) {
	query := `
		SELECT identifier, token_hash, expires_at, created_at
		FROM verification_tokens
		WHERE identifier = $1
	`
	t := &models.VerificationToken{}
	err := queryEngine(ctx, r.pool).QueryRow(ctx, query, identifier).Scan(
		&t.Identifier, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find verification token: %w", err)
	}
	return t, nil
}

// DeleteByIdentifierAndHash removes the row only if the stored hash still
// matches. Of two concurrent consumers, exactly one observes a deletion.
func (r *VerificationTokenRepositoryPostgres) DeleteByIdentifierAndHash(ctx context.Context, identifier, tokenHash string) (bool, error) {
	query := `DELETE FROM verification_tokens WHERE identifier = $1 AND token_hash = $2`
	result, err := queryEngine(ctx, r.pool).Exec(ctx, query, identifier, tokenHash)
	if err != nil {
		return false, fmt.Errorf("failed to consume verification token: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// DeleteByIdentifier removes any token for the identifier.
func (r *VerificationTokenRepositoryPostgres) DeleteByIdentifier(ctx context.Context, identifier string) (int64, error) {
	query := `DELETE FROM verification_tokens WHERE identifier = $1`
	result, err := queryEngine(ctx, r.pool).Exec(ctx, query, identifier)
	if err != nil {
		return 0, fmt.Errorf("failed to delete verification tokens by identifier: %w", err)
	}
	return result.RowsAffected(), nil
}

// DeleteExpired removes all expired tokens.
func (r *VerificationTokenRepositoryPostgres) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM verification_tokens WHERE expires_at <= NOW()`
	result, err := queryEngine(ctx, r.pool).Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired verification tokens: %w", err)
	}
	return result.RowsAffected(), nil
}

var _ repository.VerificationTokenRepository = (*VerificationTokenRepositoryPostgres)(nil)
