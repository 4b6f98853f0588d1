// File: backend/services/account-security-service/internal/service/privacy_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/errors"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/models"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/repository"
)

// PrivacyService reads and updates per-user privacy settings. A user who has
// never saved settings sees the defaults; the first update materializes a row.
type PrivacyService struct {
	userRepo    repository.UserRepository
	privacyRepo repository.PrivacySettingsRepository
	logger      *zap.Logger
}

func NewPrivacyService(userRepo repository.UserRepository, privacyRepo repository.PrivacySettingsRepository, logger *zap.Logger) *PrivacyService {
	return &PrivacyService{
		userRepo:    userRepo,
		privacyRepo: privacyRepo,
		logger:      logger.Named("privacy_service"),
	}
}

// GetSettings returns the caller's privacy settings, falling back to the
// defaults when none have been saved.
func (s *PrivacyService) GetSettings(ctx context.Context, userID uuid.UUID) (*models.PrivacySettings, error) {
	settings, err := s.privacyRepo.FindByUserID(ctx, userID)
	if err != nil {
		if domainErrors.IsNotFound(err) {
			return models.DefaultPrivacySettings(userID), nil
		}
		return nil, fmt.Errorf("loading privacy settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings applies a partial update: nil fields keep their current
// value. Accepting cookies stamps the acceptance time; withdrawing acceptance
// clears it.
func (s *PrivacyService) UpdateSettings(ctx context.Context, userID uuid.UUID, req *models.UpdatePrivacySettingsRequest) (*models.PrivacySettings, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if req.ProfileVisibility != nil {
		if !req.ProfileVisibility.Valid() {
			return nil, fmt.Errorf("%w: unknown profile visibility %q", domainErrors.ErrInvalidRequest, *req.ProfileVisibility)
		}
		settings.ProfileVisibility = *req.ProfileVisibility
	}
	if req.DataSharing != nil {
		settings.DataSharing = *req.DataSharing
	}
	if req.AnalyticsEnabled != nil {
		settings.AnalyticsEnabled = *req.AnalyticsEnabled
	}
	if req.CookiesAccepted != nil {
		settings.CookiesAccepted = *req.CookiesAccepted
		if *req.CookiesAccepted {
			settings.CookiesAcceptedAt = &now
		} else {
			settings.CookiesAcceptedAt = nil
		}
	}
	settings.UpdatedAt = now

	if err := s.privacyRepo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("saving privacy settings: %w", err)
	}

	s.logger.Info("privacy settings updated", zap.String("user_id", userID.String()))
	return settings, nil
}
