package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/fnvj/console/internal/access"
	"github.com/fnvj/console/internal/analytics"
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
		slog.Default().Info("test mode detected, skipping worker startup")
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

	// The worker shares queue and cache with the Redis deployment; other
	// store drivers have nothing to warm.
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	store := kv.NewRedisWithClient(redisClient)
	sessions := shared.NewSessionManager(ctx, store, sessionKey, logger)

	accessRepo := access.NewRepository(ctx, store, accountsKey, logger)
	accessService := access.NewService(accessRepo, sessions)

	analyticsCache := analytics.NewCache(redisClient, cfg.CacheTTL)
	ledgerRepo := ledger.NewRepository(ctx, store, ledger.DefaultKeys(), logger)
	ledgerService := ledger.NewService(ledgerRepo, analyticsCache, logger)
	analyticsService := analytics.NewService(ledgerService, accessService, analyticsCache)

	warmupJob := jobs.NewWarmupJob(analyticsService, accessService, logger)

	warmupTask, err := jobs.NewWarmupTask(jobs.WarmupPayload{PerCollaborator: true})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskAnalyticsWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "15 1 * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
