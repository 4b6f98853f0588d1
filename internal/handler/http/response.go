// File: backend/services/account-security-service/internal/handler/http/response.go
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/errors"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/handler/http/middleware"
)

// ResponseError is the error envelope of the API.
type ResponseError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// RespondWithError maps a domain error to its HTTP status and writes a
// generic message. Internal details stay in the log, keyed by request id;
// the client never sees them.
func RespondWithError(c *gin.Context, err error, logger *zap.Logger) {
	status, code, message := classify(err)

	entry := logger.With(
		zap.Int("status_code", status),
		zap.String("error_code", code),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("request_id", middleware.RequestIDFromContext(c)),
	)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed", zap.Error(err))
	} else {
		entry.Warn("request rejected", zap.Error(err))
	}

	c.AbortWithStatusJSON(status, ResponseError{Error: message, Code: code})
}

// RespondWithValidationError reports a malformed request body. The detail is
// safe to return: it describes the request shape, not server state.
func RespondWithValidationError(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ResponseError{
		Error: detail,
		Code:  "bad_request",
	})
}

// RespondWithData writes a JSON body with the given status.
func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// RespondWithMessage writes a message-only success body.
func RespondWithMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// RespondWithNoContent writes 204.
func RespondWithNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func classify(err error) (status int, code, message string) {
	switch {
	case domainErrors.IsBadRequest(err):
		return http.StatusBadRequest, "bad_request", "invalid request"
	case domainErrors.IsUnauthorized(err):
		return http.StatusUnauthorized, "unauthorized", "authentication required"
	case domainErrors.IsForbidden(err):
		return http.StatusForbidden, "forbidden", "access denied"
	case domainErrors.IsNotFound(err):
		return http.StatusNotFound, "not_found", "resource not found"
	case domainErrors.IsConflict(err):
		return http.StatusConflict, "conflict", "resource already exists"
	case domainErrors.IsUnprocessable(err):
		return http.StatusUnprocessableEntity, "unprocessable", unprocessableMessage(err)
	default:
		return http.StatusInternalServerError, "internal_error", "internal server error"
	}
}

// unprocessableMessage keeps token failures indistinguishable from each other
// while still telling the user what kind of check failed.
func unprocessableMessage(err error) string {
	switch {
	case domainErrors.IsTokenRejection(err):
		return "invalid or expired verification token"
	case domainErrors.Is2FAState(err):
		return "two-factor authentication state does not allow this operation"
	default:
		return "verification failed"
	}
}
