// File: backend/services/account-security-service/internal/handler/http/security_handler.go
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/errors"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/handler/http/middleware"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/service"
)

// SecurityHandler exposes credential rotation: password change and the
// two-step email change.
type SecurityHandler struct {
	accountService *service.AccountService
	logger         *zap.Logger
}

func NewSecurityHandler(accountService *service.AccountService, logger *zap.Logger) *SecurityHandler {
	return &SecurityHandler{
		accountService: accountService,
		logger:         logger.Named("security_handler"),
	}
}

// ChangePasswordRequest rotates the local password. The current password
// reauthenticates the caller.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}

// ChangePassword handles POST /api/v1/security/password.
func (h *SecurityHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondWithError(c, domainErrors.ErrUnauthorized, h.logger)
		return
	}

	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.accountService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		RespondWithError(c, err, h.logger)
		return
	}
	RespondWithNoContent(c)
}

// RequestEmailChangeRequest starts an email rotation.
type RequestEmailChangeRequest struct {
	NewEmail string `json:"new_email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RequestEmailChange handles POST /api/v1/security/email. The account email
// is unchanged until the token sent to the new address is confirmed.
func (h *SecurityHandler) RequestEmailChange(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondWithError(c, domainErrors.ErrUnauthorized, h.logger)
		return
	}

	var req RequestEmailChangeRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.accountService.RequestEmailChange(c.Request.Context(), userID, req.NewEmail, req.Password); err != nil {
		RespondWithError(c, err, h.logger)
		return
	}
	RespondWithMessage(c, http.StatusAccepted, "verification sent to new address")
}

// ConfirmEmailChangeRequest finishes an email rotation with the token
// delivered to the new address.
type ConfirmEmailChangeRequest struct {
	NewEmail string `json:"new_email" binding:"required,email"`
	Token    string `json:"token" binding:"required"`
}

// ConfirmEmailChange handles POST /api/v1/security/email/confirm.
func (h *SecurityHandler) ConfirmEmailChange(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondWithError(c, domainErrors.ErrUnauthorized, h.logger)
		return
	}

	var req ConfirmEmailChangeRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.accountService.ConfirmEmailChange(c.Request.Context(), userID, req.NewEmail, req.Token); err != nil {
		RespondWithError(c, err, h.logger)
		return
	}
	RespondWithMessage(c, http.StatusOK, "email updated")
}
