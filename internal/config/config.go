package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // VITRINE_DATABASE_URL (required)
	HTTPAddr    string // VITRINE_HTTP_ADDR (default ":8080")
	NATSURL     string // VITRINE_NATS_URL (optional, empty = no events)
	AuthToken   string // VITRINE_AUTH_TOKEN (optional, empty = auth disabled)

	// Backup settings
	SyncInterval   time.Duration // VITRINE_SYNC_INTERVAL (default 3m; 0 = disabled)
	SyncS3Bucket   string        // VITRINE_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // VITRINE_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // VITRINE_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // VITRINE_SYNC_S3_KEY (default "vitrine/backup.jsonl")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:    os.Getenv("VITRINE_DATABASE_URL"),
		HTTPAddr:       envOrDefault("VITRINE_HTTP_ADDR", ":8080"),
		NATSURL:        os.Getenv("VITRINE_NATS_URL"),
		AuthToken:      os.Getenv("VITRINE_AUTH_TOKEN"),
		SyncS3Bucket:   os.Getenv("VITRINE_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("VITRINE_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("VITRINE_SYNC_S3_REGION", "us-east-1"),
		SyncS3Key:      envOrDefault("VITRINE_SYNC_S3_KEY", "vitrine/backup.jsonl"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("VITRINE_DATABASE_URL is required")
	}

	intervalStr := envOrDefault("VITRINE_SYNC_INTERVAL", "3m")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("VITRINE_SYNC_INTERVAL: %w", err)
		}
		c.SyncInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
