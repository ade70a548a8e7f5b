// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Dispatch and store mode names.
const (
	DispatchInProc = "inproc"
	DispatchRedis  = "redis"

	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config represents application configuration loaded from environment
// variables, with defaults applied where sensible.
type Config struct {
	AppEnv   string
	HTTPPort string

	SegmindAPIURL string
	SegmindAPIKey string

	StorageProvider  string // localfs | s3 | gdrive
	StorageLocalRoot string
	StorageBaseURL   string
	S3Bucket         string
	AWSRegion        string

	GDriveClientID     string
	GDriveClientSecret string
	GDriveRefreshToken string
	GDriveFolderID     string

	JobStore    string // memory | postgres
	DatabaseURL string

	Dispatch  string // inproc | redis
	RedisAddr string
	QueueName string

	WorkerConcurrency int
	Pacing            time.Duration
	GenerationTimeout time.Duration
	SpoolDir          string

	CORSAllowedOrigins []string
}

// Load reads configuration from the environment and validates mode
// combinations.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		SegmindAPIURL: getEnv("SEGMIND_API_URL", "https://api.segmind.com/v1/wan-2.2-i2v-fast"),
		SegmindAPIKey: os.Getenv("SEGMIND_API_KEY"),

		StorageProvider:  getEnv("STORAGE_PROVIDER", "localfs"),
		StorageLocalRoot: getEnv("STORAGE_LOCAL_ROOT", "data"),
		StorageBaseURL:   getEnv("STORAGE_BASE_URL", "http://localhost:8080/files"),
		S3Bucket:         os.Getenv("S3_BUCKET"),
		AWSRegion:        getEnv("AWS_REGION", "ap-south-1"),

		GDriveClientID:     os.Getenv("GDRIVE_CLIENT_ID"),
		GDriveClientSecret: os.Getenv("GDRIVE_CLIENT_SECRET"),
		GDriveRefreshToken: os.Getenv("GDRIVE_REFRESH_TOKEN"),
		GDriveFolderID:     os.Getenv("GDRIVE_FOLDER_ID"),

		JobStore:    getEnv("JOB_STORE", StoreMemory),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		Dispatch:  getEnv("DISPATCH", DispatchInProc),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		QueueName: getEnv("QUEUE_NAME", "clipgen:jobs"),

		WorkerConcurrency: getEnvInt("WORKER_CONCURRENCY", 4),
		Pacing:            time.Second * time.Duration(getEnvInt("PACING_SECONDS", 2)),
		GenerationTimeout: time.Second * time.Duration(getEnvInt("GENERATION_TIMEOUT_SECONDS", 120)),
		SpoolDir:          getEnv("SPOOL_DIR", "videos"),

		CORSAllowedOrigins: envCSV("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	if cfg.SegmindAPIKey == "" {
		return nil, fmt.Errorf("SEGMIND_API_KEY is required")
	}

	switch cfg.StorageProvider {
	case "localfs":
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required for the s3 storage provider")
		}
	case "gdrive":
		if cfg.GDriveClientID == "" || cfg.GDriveClientSecret == "" || cfg.GDriveRefreshToken == "" {
			return nil, fmt.Errorf("GDRIVE_CLIENT_ID, GDRIVE_CLIENT_SECRET and GDRIVE_REFRESH_TOKEN are required for the gdrive storage provider")
		}
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.StorageProvider)
	}

	switch cfg.JobStore {
	case StoreMemory:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres job store")
		}
	default:
		return nil, fmt.Errorf("unknown job store: %s", cfg.JobStore)
	}

	switch cfg.Dispatch {
	case DispatchInProc:
	case DispatchRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required for redis dispatch")
		}
		// The standalone worker cannot see an in-memory store.
		if cfg.JobStore != StorePostgres {
			return nil, fmt.Errorf("redis dispatch requires JOB_STORE=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown dispatch mode: %s", cfg.Dispatch)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envCSV(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
