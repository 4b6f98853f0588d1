// File: backend/services/account-security-service/internal/handler/http/middleware/auth_middleware.go
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/config"
)

const (
	AuthHeaderKey  = "Authorization"
	AuthTypeBearer = "bearer"

	// GinContextUserIDKey holds the authenticated user's uuid.UUID.
	GinContextUserIDKey = "userID"
)

// AccessClaims are the claims this service reads from platform access tokens.
type AccessClaims struct {
	jwt.RegisteredClaims
}

// AuthMiddleware validates the Bearer token issued by the platform auth
// service (HS256, shared secret) and resolves the subject into a user id on
// the gin context. Every protected route goes through here; handlers never
// read user ids from the request body or path.
func AuthMiddleware(cfg config.JWTConfig, logger *zap.Logger) gin.HandlerFunc {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}
	parser := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != AuthTypeBearer {
			abortUnauthorized(c, "authorization header format must be Bearer <token>")
			return
		}

		claims := &AccessClaims{}
		if _, err := jwt.ParseWithClaims(parts[1], claims, keyFunc, parser...); err != nil {
			logger.Warn("access token rejected",
				zap.Error(err),
				zap.String("request_id", RequestIDFromContext(c)),
			)
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			logger.Warn("access token subject is not a uuid",
				zap.String("request_id", RequestIDFromContext(c)),
			)
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(GinContextUserIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user id set by AuthMiddleware.
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(GinContextUserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
		"code":  "unauthorized",
	})
}
