package config

import (
	"testing"
	"time"
)

func setBase(t *testing.T) {
	t.Helper()
	t.Setenv("SEGMIND_API_KEY", "test-key")
}

func TestLoadDefaults(t *testing.T) {
	setBase(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q", cfg.HTTPPort)
	}
	if cfg.SegmindAPIURL != "https://api.segmind.com/v1/wan-2.2-i2v-fast" {
		t.Errorf("SegmindAPIURL = %q", cfg.SegmindAPIURL)
	}
	if cfg.StorageProvider != "localfs" {
		t.Errorf("StorageProvider = %q", cfg.StorageProvider)
	}
	if cfg.JobStore != StoreMemory {
		t.Errorf("JobStore = %q", cfg.JobStore)
	}
	if cfg.Dispatch != DispatchInProc {
		t.Errorf("Dispatch = %q", cfg.Dispatch)
	}
	if cfg.Pacing != 2*time.Second {
		t.Errorf("Pacing = %v", cfg.Pacing)
	}
	if cfg.GenerationTimeout != 120*time.Second {
		t.Errorf("GenerationTimeout = %v", cfg.GenerationTimeout)
	}
	if cfg.WorkerConcurrency != 4 {
		t.Errorf("WorkerConcurrency = %d", cfg.WorkerConcurrency)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("SEGMIND_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted empty SEGMIND_API_KEY")
	}
}

func TestLoadS3RequiresBucket(t *testing.T) {
	setBase(t)
	t.Setenv("STORAGE_PROVIDER", "s3")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted s3 without S3_BUCKET")
	}

	t.Setenv("S3_BUCKET", "clips")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.S3Bucket != "clips" {
		t.Errorf("S3Bucket = %q", cfg.S3Bucket)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	setBase(t)
	t.Setenv("STORAGE_PROVIDER", "ftp")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted unknown storage provider")
	}
}

func TestLoadRedisDispatchRequiresPostgres(t *testing.T) {
	setBase(t)
	t.Setenv("DISPATCH", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted redis dispatch with the memory store")
	}

	t.Setenv("JOB_STORE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/clipgen")
	if _, err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoadCORSList(t *testing.T) {
	setBase(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.test, https://b.test,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.test" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}
