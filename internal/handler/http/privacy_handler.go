// File: backend/services/account-security-service/internal/handler/http/privacy_handler.go
package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/errors"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/models"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/handler/http/middleware"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/service"
)

// PrivacyHandler exposes data export, account erasure and privacy settings.
type PrivacyHandler struct {
	accountService *service.AccountService
	privacyService *service.PrivacyService
	logger         *zap.Logger
}

func NewPrivacyHandler(accountService *service.AccountService, privacyService *service.PrivacyService, logger *zap.Logger) *PrivacyHandler {
	return &PrivacyHandler{
		accountService: accountService,
		privacyService: privacyService,
		logger:         logger.Named("privacy_handler"),
	}
}

// Export handles GET /api/v1/privacy/export. The snapshot is generated on
// the fly and offered as a download.
func (h *PrivacyHandler) Export(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondWithError(c, domainErrors.ErrUnauthorized, h.logger)
		return
	}

	snapshot, err := h.accountService.ExportData(c.Request.Context(), userID)
	if err != nil {
		RespondWithError(c, err, h.logger)
		return
	}

	filename := fmt.Sprintf("account-export-%s.json", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	RespondWithData(c, http.StatusOK, snapshot)
}

// DeleteAccount handles DELETE /api/v1/privacy/delete. Irreversible; every
// record the service holds about the caller goes in one transaction.
func (h *PrivacyHandler) DeleteAccount(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondWithError(c, domainErrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), userID); err != nil {
		RespondWithError(c, err, h.logger)
		return
	}
	RespondWithNoContent(c)
}

// GetSettings handles GET /api/v1/settings/privacy.
func (h *PrivacyHandler) GetSettings(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondWithError(c, domainErrors.ErrUnauthorized, h.logger)
		return
	}

	settings, err := h.privacyService.GetSettings(c.Request.Context(), userID)
	if err != nil {
		RespondWithError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, settings)
}

// UpdateSettingsRequest is a partial privacy-settings update; omitted fields
// keep their current value.
type UpdateSettingsRequest struct {
	ProfileVisibility *string `json:"profile_visibility" binding:"omitempty,oneof=public friends private"`
	DataSharing       *bool   `json:"data_sharing"`
	AnalyticsEnabled  *bool   `json:"analytics_enabled"`
	CookiesAccepted   *bool   `json:"cookies_accepted"`
}

// UpdateSettings handles PATCH /api/v1/settings/privacy.
func (h *PrivacyHandler) UpdateSettings(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondWithError(c, domainErrors.ErrUnauthorized, h.logger)
		return
	}

	var req UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	update := &models.UpdatePrivacySettingsRequest{
		DataSharing:      req.DataSharing,
		AnalyticsEnabled: req.AnalyticsEnabled,
		CookiesAccepted:  req.CookiesAccepted,
	}
	if req.ProfileVisibility != nil {
		visibility := models.ProfileVisibility(*req.ProfileVisibility)
		update.ProfileVisibility = &visibility
	}

	settings, err := h.privacyService.UpdateSettings(c.Request.Context(), userID, update)
	if err != nil {
		RespondWithError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, settings)
}
