// File: backend/services/account-security-service/internal/handler/http/session_handler.go
package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/errors"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/handler/http/middleware"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/service"
)

// SessionHandler exposes the caller's session list and single-session
// revocation.
type SessionHandler struct {
	sessionService *service.SessionService
	logger         *zap.Logger
}

func NewSessionHandler(sessionService *service.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		logger:         logger.Named("session_handler"),
	}
}

// List handles GET /api/v1/sessions.
func (h *SessionHandler) List(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondWithError(c, domainErrors.ErrUnauthorized, h.logger)
		return
	}

	sessions, err := h.sessionService.List(c.Request.Context(), userID)
	if err != nil {
		RespondWithError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, gin.H{"sessions": sessions})
}

// Revoke handles DELETE /api/v1/sessions/:id. Revoking a session that
// belongs to another user yields 403 and deletes nothing; a missing session
// yields 404.
func (h *SessionHandler) Revoke(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		RespondWithError(c, domainErrors.ErrUnauthorized, h.logger)
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondWithError(c, fmt.Errorf("%w: session id must be a uuid", domainErrors.ErrInvalidRequest), h.logger)
		return
	}

	if err := h.sessionService.Revoke(c.Request.Context(), userID, sessionID); err != nil {
		RespondWithError(c, err, h.logger)
		return
	}
	RespondWithNoContent(c)
}
