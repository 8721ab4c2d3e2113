package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hongminglow/storefront/internal/config"
	"github.com/hongminglow/storefront/internal/logger"
	"github.com/hongminglow/storefront/internal/server"
	"github.com/hongminglow/storefront/internal/storage/memdb"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Must(logger.Options{Service: "storefront-devapi"}).Fatal("load config", zap.Error(err))
	}
	log := logger.Must(logger.Options{
		Service:    "storefront-devapi",
		Env:        cfg.AppEnv,
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogFile,
	})
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Info("no .env file found; relying on existing environment")
	}
	if err := cfg.ValidateDevAPI(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	ctx := context.Background()
	shop := memdb.NewShop()
	admin, err := server.SeedAdmin(ctx, shop, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatal("seed admin", zap.Error(err))
	}
	if err := server.SeedCatalog(ctx, shop); err != nil {
		log.Fatal("seed catalog", zap.Error(err))
	}
	log.Info("seeded development data", zap.String("admin", admin.Email))

	srv := server.New(cfg, shop, log)

	go func() {
		log.Info("storefront dev backend listening", zap.String("addr", cfg.HTTPAddress()))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error("graceful shutdown error", zap.Error(err))
	}
}
