// File: backend/services/account-security-service/internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/config"
	domainInterfaces "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/domain/interfaces"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/events"
	handlerhttp "github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/handler/http"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/handler/http/middleware"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/infrastructure/notification"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/infrastructure/security"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/repository/postgres"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/service"
)

// App holds the running service and everything it must close on shutdown.
type App struct {
	cfg       *config.Config
	logger    *zap.Logger
	server    *http.Server
	publisher events.Publisher
	closers   []func()
}

// New wires the whole service: storage, security primitives, services,
// transport. It connects to postgres (and optionally Redis and Kafka) but
// does not start listening; call Run for that.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	if cfg.Database.AutoMigrate {
		if err := postgres.MigrateUp(cfg.Database, logger); err != nil {
			return nil, err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	a.closers = append(a.closers, pool.Close)

	// Event publishing is optional; without Kafka the service still works,
	// it just stops telling the platform about security events.
	a.publisher = events.Publisher(events.NoOpPublisher{})
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Telemetry.ServiceName, logger)
		if err != nil {
			return nil, fmt.Errorf("connecting to kafka: %w", err)
		}
		a.publisher = kafkaPublisher
		a.closers = append(a.closers, func() {
			if err := kafkaPublisher.Close(); err != nil {
				logger.Error("closing kafka publisher", zap.Error(err))
			}
		})
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.Security.RateLimiting.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		a.closers = append(a.closers, func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("closing redis client", zap.Error(err))
			}
		})
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.Security.RateLimiting.Sensitive, logger)
	}

	passwordService, err := security.NewArgon2idPasswordService(security.Argon2idParams{
		Memory:      cfg.Security.PasswordHash.Memory,
		Iterations:  cfg.Security.PasswordHash.Iterations,
		Parallelism: cfg.Security.PasswordHash.Parallelism,
		SaltLength:  cfg.Security.PasswordHash.SaltLength,
		KeyLength:   cfg.Security.PasswordHash.KeyLength,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring password hashing: %w", err)
	}
	encryptionService, err := security.NewAESGCMEncryptionService(cfg.MFA.TOTPEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("configuring secret encryption: %w", err)
	}
	totpService := security.NewTOTPService(cfg.MFA.TOTPIssuerName)

	var notifier domainInterfaces.NotificationService
	if cfg.Kafka.Enabled {
		notifier = notification.NewKafkaNotifier(a.publisher, logger)
	} else {
		notifier = notification.NewLogNotifier(logger)
	}

	userRepo := postgres.NewUserRepositoryPostgres(pool)
	sessionRepo := postgres.NewSessionRepositoryPostgres(pool)
	tokenRepo := postgres.NewVerificationTokenRepositoryPostgres(pool)
	secretRepo := postgres.NewMFASecretRepositoryPostgres(pool)
	backupCodeRepo := postgres.NewMFABackupCodeRepositoryPostgres(pool)
	privacyRepo := postgres.NewPrivacySettingsRepositoryPostgres(pool)
	notificationRepo := postgres.NewNotificationSettingsRepositoryPostgres(pool)
	loginHistoryRepo := postgres.NewLoginHistoryRepositoryPostgres(pool)
	billingRepo := postgres.NewBillingRepositoryPostgres(pool)
	txManager := postgres.NewTxManager(pool)

	tokenService := service.NewVerificationTokenService(tokenRepo, logger)
	mfaService := service.NewMFAService(service.MFAServiceConfig{
		UserRepo:        userRepo,
		SecretRepo:      secretRepo,
		BackupCodeRepo:  backupCodeRepo,
		TOTPService:     totpService,
		Encryption:      encryptionService,
		PasswordService: passwordService,
		TxManager:       txManager,
		Publisher:       a.publisher,
		Logger:          logger,
		BackupCodeCount: cfg.MFA.BackupCodeCount,
	})
	sessionService := service.NewSessionService(sessionRepo, a.publisher, logger)
	accountService := service.NewAccountService(service.AccountServiceConfig{
		UserRepo:         userRepo,
		SessionRepo:      sessionRepo,
		TokenService:     tokenService,
		SecretRepo:       secretRepo,
		BackupCodeRepo:   backupCodeRepo,
		PrivacyRepo:      privacyRepo,
		NotificationRepo: notificationRepo,
		LoginHistoryRepo: loginHistoryRepo,
		BillingRepo:      billingRepo,
		PasswordService:  passwordService,
		Notifier:         notifier,
		TxManager:        txManager,
		Publisher:        a.publisher,
		Logger:           logger,
		EmailChangeTTL:   cfg.Security.EmailChangeTokenTTL,
	})
	privacyService := service.NewPrivacyService(userRepo, privacyRepo, logger)

	router := handlerhttp.NewRouter(handlerhttp.RouterConfig{
		Config:         cfg,
		MFAService:     mfaService,
		SessionService: sessionService,
		AccountService: accountService,
		PrivacyService: privacyService,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	})

	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return a, nil
}

// Run serves HTTP until ctx is canceled, then drains in-flight requests
// within the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.close()
	if err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.logger.Info("shutdown complete")
	return nil
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	// Sync on stderr can fail, that is fine.
	_ = a.logger.Sync()
}
