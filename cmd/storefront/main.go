package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hongminglow/storefront/internal/api"
	"github.com/hongminglow/storefront/internal/app"
	"github.com/hongminglow/storefront/internal/cli"
	"github.com/hongminglow/storefront/internal/config"
	"github.com/hongminglow/storefront/internal/logger"
	"github.com/hongminglow/storefront/internal/session"
	"github.com/hongminglow/storefront/internal/storage"
	"github.com/hongminglow/storefront/internal/storage/file"
	"github.com/hongminglow/storefront/internal/storage/postgres"
	"github.com/hongminglow/storefront/internal/storage/redis"
	"github.com/hongminglow/storefront/internal/telemetry"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Must(logger.Options{Service: "storefront"}).Fatal("load config", zap.Error(err))
	}

	// The terminal belongs to the shell, so logs go to a file unless
	// LOG_FILE says otherwise.
	logPath := cfg.LogFile
	if logPath == "" {
		logPath = filepath.Join(filepath.Dir(cfg.StatePath), "storefront.log")
		_ = os.MkdirAll(filepath.Dir(logPath), 0o700)
	}
	log := logger.Must(logger.Options{
		Service:    "storefront",
		Env:        cfg.AppEnv,
		Level:      cfg.LogLevel,
		OutputPath: logPath,
	})
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Info("no .env file found; relying on existing environment")
	}
	if err := cfg.ValidateClient(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:       cfg.OTelEnabled,
		ServiceName:   "storefront",
		Environment:   cfg.AppEnv,
		CollectorAddr: cfg.OTelCollectorAddr,
	})
	if err != nil {
		log.Fatal("init tracing", zap.Error(err))
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("flush traces", zap.Error(err))
		}
	}()

	kv, err := openStateStore(ctx, cfg)
	if err != nil {
		log.Fatal("open state store", zap.String("backend", cfg.StateBackend), zap.Error(err))
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Warn("close state store", zap.Error(err))
		}
	}()

	client := api.New(cfg.APIURL, cfg.RequestTimeout, log.Named("api"))
	store := app.New(client, session.NewStore(kv, log.Named("session")), log.Named("app"))
	sess := store.Start(ctx)
	log.Info("client started",
		zap.String("api", client.BaseURL()),
		zap.String("state_backend", cfg.StateBackend),
		zap.Bool("restored_session", sess.Authenticated()),
	)

	shell := cli.New(store, os.Stdin, os.Stdout, cfg.RequestTimeout, log.Named("cli"))
	done := make(chan error, 1)
	go func() { done <- shell.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			log.Error("shell stopped", zap.Error(err))
		}
	case <-ctx.Done():
		fmt.Fprintln(os.Stdout)
		log.Info("interrupted")
	}
}

func openStateStore(ctx context.Context, cfg config.Config) (storage.KeyValue, error) {
	switch cfg.StateBackend {
	case config.BackendMemory:
		return storage.NewMemory(), nil
	case config.BackendRedis:
		return redis.NewStore(ctx, redis.Config{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			Namespace: cfg.StateNamespace,
		})
	case config.BackendPostgres:
		return postgres.NewStore(ctx, cfg.DatabaseURL, cfg.StateNamespace)
	default:
		return file.NewStore(cfg.StatePath)
	}
}
