// File: backend/services/account-security-service/internal/handler/http/router.go
package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/config"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/handler/http/middleware"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/service"
)

// RouterConfig carries everything NewRouter needs.
type RouterConfig struct {
	Config         *config.Config
	MFAService     *service.MFAService
	SessionService *service.SessionService
	AccountService *service.AccountService
	PrivacyService *service.PrivacyService
	RateLimiter    *middleware.RateLimiter
	Logger         *zap.Logger
}

// NewRouter builds the gin engine with all routes and middleware. A request
// to a known path with the wrong method gets 405, not 404.
func NewRouter(rc RouterConfig) *gin.Engine {
	if rc.Config.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(rc.Logger))
	router.Use(middleware.Recovery(rc.Logger))
	if rc.Config.Telemetry.MetricsEnabled {
		router.Use(middleware.Metrics())
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: false,
	}))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ResponseError{Error: "resource not found", Code: "not_found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ResponseError{Error: "method not allowed", Code: "method_not_allowed"})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if rc.Config.Telemetry.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	mfaHandler := NewMFAHandler(rc.MFAService, rc.Logger)
	sessionHandler := NewSessionHandler(rc.SessionService, rc.Logger)
	securityHandler := NewSecurityHandler(rc.AccountService, rc.Logger)
	privacyHandler := NewPrivacyHandler(rc.AccountService, rc.PrivacyService, rc.Logger)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(rc.Config.JWT, rc.Logger))
	if rc.RateLimiter != nil {
		api.Use(rc.RateLimiter.Middleware())
	}

	mfa := api.Group("/mfa")
	{
		mfa.GET("/setup", mfaHandler.Setup)
		mfa.POST("/verify", mfaHandler.Verify)
		mfa.POST("/backup/consume", mfaHandler.ConsumeBackupCode)
		mfa.DELETE("", mfaHandler.Disable)
	}

	sessions := api.Group("/sessions")
	{
		sessions.GET("", sessionHandler.List)
		sessions.DELETE("/:id", sessionHandler.Revoke)
	}

	securityGroup := api.Group("/security")
	{
		securityGroup.POST("/password", securityHandler.ChangePassword)
		securityGroup.POST("/email", securityHandler.RequestEmailChange)
		securityGroup.POST("/email/confirm", securityHandler.ConfirmEmailChange)
	}

	privacy := api.Group("/privacy")
	{
		privacy.GET("/export", privacyHandler.Export)
		privacy.DELETE("/delete", privacyHandler.DeleteAccount)
	}

	settings := api.Group("/settings")
	{
		settings.GET("/privacy", privacyHandler.GetSettings)
		settings.PATCH("/privacy", privacyHandler.UpdateSettings)
	}

	return router
}
