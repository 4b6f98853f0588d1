// File: backend/services/account-security-service/internal/handler/http/mfa_handler.go
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/errors"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/handler/http/middleware"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/service"
)

// MFAHandler exposes TOTP enrollment, activation, backup-code redemption and
// deactivation.
type MFAHandler struct {
	mfaService *service.MFAService
	logger     *zap.Logger
}

func NewMFAHandler(mfaService *service.MFAService, logger *zap.Logger) *MFAHandler {
	return &MFAHandler{
		mfaService: mfaService,
		logger:     logger.Named("mfa_handler"),
	}
}

// Setup handles GET /api/v1/mfa/setup. Returns the secret and provisioning
// URI of a fresh pending enrollment. Calling it again replaces the pending
// secret; MFA is not active until verified.
func (h *MFAHandler) Setup(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondWithError(c, domainErrors.ErrUnauthorized, h.logger)
		return
	}

	resp, err := h.mfaService.BeginEnrollment(c.Request.Context(), userID)
	if err != nil {
		RespondWithError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, resp)
}

// VerifyRequest confirms an enrollment: the secret echoes the one returned by
// Setup, the code is a current TOTP for it.
type VerifyRequest struct {
	Secret string `json:"secret" binding:"required"`
	Code   string `json:"code" binding:"required,len=6,numeric"`
}

// Verify handles POST /api/v1/mfa/verify. On success MFA is active and the
// backup codes are returned, the only time they are visible.
func (h *MFAHandler) Verify(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondWithError(c, domainErrors.ErrUnauthorized, h.logger)
		return
	}

	var req VerifyRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.mfaService.ConfirmEnrollment(c.Request.Context(), userID, req.Secret, req.Code)
	if err != nil {
		RespondWithError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, resp)
}

// ConsumeBackupCodeRequest redeems one backup code.
type ConsumeBackupCodeRequest struct {
	Code string `json:"code" binding:"required,len=8"`
}

// ConsumeBackupCode handles POST /api/v1/mfa/backup/consume.
func (h *MFAHandler) ConsumeBackupCode(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondWithError(c, domainErrors.ErrUnauthorized, h.logger)
		return
	}

	var req ConsumeBackupCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.mfaService.ConsumeBackupCode(c.Request.Context(), userID, req.Code); err != nil {
		RespondWithError(c, err, h.logger)
		return
	}
	RespondWithMessage(c, http.StatusOK, "backup code accepted")
}

// DisableRequest turns MFA off; the current password proves the caller.
type DisableRequest struct {
	Password string `json:"password" binding:"required"`
}

// Disable handles DELETE /api/v1/mfa.
func (h *MFAHandler) Disable(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondWithError(c, domainErrors.ErrUnauthorized, h.logger)
		return
	}

	var req DisableRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.mfaService.DisableMFA(c.Request.Context(), userID, req.Password); err != nil {
		RespondWithError(c, err, h.logger)
		return
	}
	RespondWithNoContent(c)
}
