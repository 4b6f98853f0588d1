// File: backend/services/account-security-service/internal/service/token_service.go

package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/errors"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/models"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/repository"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/infrastructure/security"
)

// VerificationTokenService issues and consumes single-use opaque tokens.
// Only the SHA-256 hash of a token is ever persisted; the plaintext exists
// once, in the return value of Issue, and is never logged.
type VerificationTokenService struct {
	tokenRepo repository.VerificationTokenRepository
	logger    *zap.Logger
}

func NewVerificationTokenService(tokenRepo repository.VerificationTokenRepository, logger *zap.Logger) *VerificationTokenService {
	return &VerificationTokenService{
		tokenRepo: tokenRepo,
		logger:    logger.Named("verification_token_service"),
	}
}

// Issue mints a fresh 256-bit token for identifier, replacing any previously
// issued token for the same identifier. The returned plaintext is handed to
// the delivery channel by the caller and cannot be recovered afterwards.
func (s *VerificationTokenService) Issue(ctx context.Context, identifier string, ttl time.Duration) (string, error) {
	if identifier == "" {
		return "", fmt.Errorf("%w: empty token identifier", domainErrors.ErrInvalidRequest)
	}

	plain, err := security.GenerateSecureToken(security.VerificationTokenBytes)
	if err != nil {
		return "", fmt.Errorf("generating verification token: %w", err)
	}

	now := time.Now().UTC()
	token := &models.VerificationToken{
		Identifier: identifier,
		TokenHash:  security.HashToken(plain),
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
	}

	if err := s.tokenRepo.Upsert(ctx, token); err != nil {
		return "", fmt.Errorf("storing verification token: %w", err)
	}

	s.logger.Info("verification token issued",
		zap.String("identifier", identifier),
		zap.Time("expires_at", token.ExpiresAt),
	)
	return plain, nil
}

// Consume validates plainToken against the stored record for identifier and,
// when it matches and has not expired, deletes the record in the same
// statement that compared it. A second Consume with the same token therefore
// observes TokenNotFound. The result distinguishes not-found, mismatch and
// expiry for logging; callers present a single generic failure externally.
func (s *VerificationTokenService) Consume(ctx context.Context, identifier, plainToken string) (models.ConsumeResult, error) {
	stored, err := s.tokenRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if domainErrors.IsNotFound(err) {
			return models.TokenNotFound, nil
		}
		return models.TokenNotFound, fmt.Errorf("loading verification token: %w", err)
	}

	hash := security.HashToken(plainToken)
	if stored.TokenHash != hash {
		s.logger.Warn("verification token mismatch", zap.String("identifier", identifier))
		return models.TokenMismatch, nil
	}

	if stored.Expired(time.Now().UTC()) {
		s.logger.Info("verification token expired",
			zap.String("identifier", identifier),
			zap.Time("expired_at", stored.ExpiresAt),
		)
		return models.TokenExpired, nil
	}

	deleted, err := s.tokenRepo.DeleteByIdentifierAndHash(ctx, identifier, hash)
	if err != nil {
		return models.TokenNotFound, fmt.Errorf("consuming verification token: %w", err)
	}
	if !deleted {
		// Lost the race against a concurrent consume or reissue.
		return models.TokenNotFound, nil
	}

	return models.TokenValid, nil
}

// CleanupExpired removes tokens past their expiry. Intended for a periodic
// maintenance job; correctness does not depend on it because Consume checks
// expiry itself.
func (s *VerificationTokenService) CleanupExpired(ctx context.Context) (int64, error) {
	removed, err := s.tokenRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("deleting expired verification tokens: %w", err)
	}
	if removed > 0 {
		s.logger.Info("expired verification tokens removed", zap.Int64("count", removed))
	}
	return removed, nil
}
