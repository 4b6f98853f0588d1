// File: backend/services/account-security-service/cmd/account-security-service/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/app"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/config"
	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/utils/logger"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.Logging.Level, cfg.Environment)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("initializing service", zap.Error(err))
	}

	if err := application.Run(ctx); err != nil {
		zapLogger.Fatal("service terminated", zap.Error(err))
	}
}
