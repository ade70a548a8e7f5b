package main

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"clipgen/internal/config"
	"clipgen/internal/pkg/logger"
	"clipgen/internal/pkg/shutdown"
	"clipgen/internal/provider"
	"clipgen/internal/queue"
	"clipgen/internal/repositories"
	"clipgen/internal/storage"
	"clipgen/internal/worker"
)

// Standalone worker process for redis dispatch. It shares the postgres job
// store with the API and consumes job ids from the redis queue.
func main() {
	_ = godotenv.Load()

	log := logger.New(logger.Config{
		Level:       os.Getenv("LOG_LEVEL"),
		Format:      os.Getenv("LOG_FORMAT"),
		ServiceName: "clipgen-worker",
	})

	cfg, err := config.Load()
	if err != nil {
		log.LogFatal("invalid configuration", err)
	}
	if cfg.Dispatch != config.DispatchRedis {
		log.LogFatal("worker requires redis dispatch", nil, "dispatch", cfg.Dispatch)
	}

	ctx := context.Background()
	sd := shutdown.NewManager(log, 30*time.Second)

	sp, err := storage.NewProvider(ctx, cfg)
	if err != nil {
		log.LogFatal("failed to initialize storage provider", err, "provider", cfg.StorageProvider)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.LogFatal("failed to connect to postgres", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.LogFatal("postgres ping failed", err)
	}
	sd.Register("postgres-pool", func(context.Context) error {
		pool.Close()
		return nil
	})

	store := repositories.NewPostgresJobRepository(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		log.LogFatal("failed to ensure schema", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.LogFatal("redis ping failed", err, "addr", cfg.RedisAddr)
	}
	sd.Register("redis", func(context.Context) error {
		return rdb.Close()
	})

	q := queue.NewRedisQueue(rdb, cfg.QueueName)

	proc := worker.New(worker.Deps{
		Store:       store,
		Generator:   provider.NewSegmindClient(cfg.SegmindAPIURL, cfg.SegmindAPIKey, cfg.GenerationTimeout),
		Storage:     sp,
		SpoolDir:    cfg.SpoolDir,
		Pacing:      cfg.Pacing,
		CallTimeout: cfg.GenerationTimeout,
		Log:         log,
	})

	workerCtx, cancel := context.WithCancel(ctx)
	sd.Register("worker-pool", func(context.Context) error {
		cancel()
		return nil
	})

	go sd.Wait()

	log.Info("worker started",
		"concurrency", cfg.WorkerConcurrency,
		"queue", cfg.QueueName,
	)
	worker.RunPool(workerCtx, cfg.WorkerConcurrency, q, proc, log)
	log.Info("worker stopped")
}
