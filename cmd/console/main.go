package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/fnvj/console/internal/access"
	"github.com/fnvj/console/internal/analytics"
	analytichttp "github.com/fnvj/console/internal/analytics/http"
	"github.com/fnvj/console/internal/app"
	"github.com/fnvj/console/internal/ledger"
	"github.com/fnvj/console/internal/platform/kv"
	"github.com/fnvj/console/internal/shared"
	"github.com/fnvj/console/jobs"
)

const (
	accountsKey = "fnvj:users"
	sessionKey  = "fnvj:session"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	store, redisClient, cleanup, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("open store", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	sessions := shared.NewSessionManager(ctx, store, sessionKey, logger)

	accessRepo := access.NewRepository(ctx, store, accountsKey, logger)
	accessService := access.NewService(accessRepo, sessions)
	accessHandler := access.NewHandler(logger, accessService)
	accessMiddleware := access.Middleware{Service: accessService, Logger: logger}

	analyticsCache := analytics.NewCache(redisClient, cfg.CacheTTL)

	ledgerRepo := ledger.NewRepository(ctx, store, ledger.DefaultKeys(), logger)
	ledgerService := ledger.NewService(ledgerRepo, analyticsCache, logger)
	ledgerHandler := ledger.NewHandler(logger, ledgerService)

	analyticsService := analytics.NewService(ledgerService, accessService, analyticsCache)
	analyticsHandler := analytichttp.NewHandler(logger, analyticsService)

	var jobsHandler *jobs.Handler
	if cfg.StoreDriver == "redis" {
		inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := inspector.Close(); err != nil {
				logger.Warn("inspector close", slog.Any("error", err))
			}
		}()
		jobsHandler = jobs.NewHandler(inspector, logger)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Access:           accessMiddleware,
		AccessHandler:    accessHandler,
		LedgerHandler:    ledgerHandler,
		AnalyticsHandler: analyticsHandler,
		JobsHandler:      jobsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

// openStore builds the persistence port for the configured driver. The Redis
// client is returned separately when available so the analytics cache can use
// it directly.
func openStore(ctx context.Context, cfg *app.Config, logger *slog.Logger) (kv.Store, *redis.Client, func(), error) {
	switch cfg.StoreDriver {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
		return kv.NewRedisWithClient(client), client, cleanup, nil
	case "postgres":
		store, err := kv.NewPostgres(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, nil, store.Close, nil
	default:
		return kv.NewMemory(), nil, func() {}, nil
	}
}
