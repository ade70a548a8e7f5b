package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"clipgen/internal/config"
	"clipgen/internal/httpapi"
	"clipgen/internal/httpapi/handlers"
	"clipgen/internal/jobs"
	"clipgen/internal/pkg/logger"
	"clipgen/internal/pkg/shutdown"
	"clipgen/internal/provider"
	"clipgen/internal/queue"
	"clipgen/internal/repositories"
	"clipgen/internal/storage"
	"clipgen/internal/worker"
)

func main() {
	_ = godotenv.Load()

	log := logger.New(logger.Config{
		Level:       envOr("LOG_LEVEL", "info"),
		Format:      envOr("LOG_FORMAT", "json"),
		ServiceName: "clipgen-api",
	})

	cfg, err := config.Load()
	if err != nil {
		log.LogFatal("invalid configuration", err)
	}

	ctx := context.Background()
	sd := shutdown.NewManager(log, 30*time.Second)

	sp, err := storage.NewProvider(ctx, cfg)
	if err != nil {
		log.LogFatal("failed to initialize storage provider", err, "provider", cfg.StorageProvider)
	}
	log.Info("storage provider ready", "provider", sp.Provider())

	checks := map[string]func(context.Context) error{}

	store, err := buildStore(ctx, cfg, sd, checks)
	if err != nil {
		log.LogFatal("failed to initialize job store", err, "store", cfg.JobStore)
	}

	q, err := buildDispatch(ctx, cfg, sd, checks, store, sp, log)
	if err != nil {
		log.LogFatal("failed to initialize dispatch", err, "mode", cfg.Dispatch)
	}

	h := handlers.New(handlers.Deps{
		Store:   store,
		Queue:   q,
		Storage: sp,
		Checks:  checks,
		Log:     log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           httpapi.NewRouter(cfg, h, log),
		ReadHeaderTimeout: 10 * time.Second,
		// Generation runs async; requests only upload images and read state.
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	sd.Register("http-server", func(ctx context.Context) error {
		return srv.Shutdown(ctx)
	})

	go func() {
		log.Info("http server listening", "addr", srv.Addr, "dispatch", cfg.Dispatch)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.LogFatal("http server failed", err)
		}
	}()

	sd.Wait()
}

func buildStore(ctx context.Context, cfg *config.Config, sd *shutdown.Manager,
	checks map[string]func(context.Context) error) (jobs.Store, error) {

	if cfg.JobStore != config.StorePostgres {
		return repositories.NewMemoryJobRepository(), nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	repo := repositories.NewPostgresJobRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	sd.Register("postgres-pool", func(context.Context) error {
		pool.Close()
		return nil
	})
	checks["postgres"] = pool.Ping
	return repo, nil
}

// buildDispatch wires the queue for the configured mode. In-process dispatch
// also starts the worker pool inside this process; redis dispatch leaves
// consumption to the standalone worker binary.
func buildDispatch(ctx context.Context, cfg *config.Config, sd *shutdown.Manager,
	checks map[string]func(context.Context) error,
	store jobs.Store, sp storage.Provider, log *logger.Logger) (queue.Queue, error) {

	if cfg.Dispatch == config.DispatchRedis {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		sd.Register("redis", func(context.Context) error {
			return rdb.Close()
		})
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
		return queue.NewRedisQueue(rdb, cfg.QueueName), nil
	}

	q := queue.NewChannelQueue(0)

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
	go worker.RunPool(workerCtx, cfg.WorkerConcurrency, q, proc, log)

	return q, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
