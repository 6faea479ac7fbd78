package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // CALIN_DATABASE_URL (required)
	HTTPAddr    string // CALIN_HTTP_ADDR (default ":8080")
	NATSURL     string // CALIN_NATS_URL (optional, empty = no events)
	AuthToken   string // CALIN_AUTH_TOKEN (optional, empty = auth disabled)

	// Remote extraction settings
	OpenAIAPIKey   string        // CALIN_OPENAI_API_KEY (optional, empty = local parser only)
	OpenAIBaseURL  string        // CALIN_OPENAI_BASE_URL (default "https://api.openai.com/v1")
	OpenAIModel    string        // CALIN_OPENAI_MODEL (default "gpt-4o")
	ExtractTimeout time.Duration // CALIN_EXTRACT_TIMEOUT (default 30s)

	// Backup settings
	BackupInterval   time.Duration // CALIN_BACKUP_INTERVAL (default 3m; 0 = disabled)
	BackupS3Bucket   string        // CALIN_BACKUP_S3_BUCKET (enables S3 when set)
	BackupS3Endpoint string        // CALIN_BACKUP_S3_ENDPOINT (custom endpoint for MinIO)
	BackupS3Region   string        // CALIN_BACKUP_S3_REGION (default "us-east-1")
	BackupS3Key      string        // CALIN_BACKUP_S3_KEY (default "calin/backup.jsonl")
	BackupGitRepo    string        // CALIN_BACKUP_GIT_REPO (enables git when set; path to clone)
	BackupGitFile    string        // CALIN_BACKUP_GIT_FILE (default "events.jsonl")
	BackupGitBranch  string        // CALIN_BACKUP_GIT_BRANCH (default "main")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:      os.Getenv("CALIN_DATABASE_URL"),
		HTTPAddr:         envOrDefault("CALIN_HTTP_ADDR", ":8080"),
		NATSURL:          os.Getenv("CALIN_NATS_URL"),
		AuthToken:        os.Getenv("CALIN_AUTH_TOKEN"),
		OpenAIAPIKey:     os.Getenv("CALIN_OPENAI_API_KEY"),
		OpenAIBaseURL:    envOrDefault("CALIN_OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:      envOrDefault("CALIN_OPENAI_MODEL", "gpt-4o"),
		BackupS3Bucket:   os.Getenv("CALIN_BACKUP_S3_BUCKET"),
		BackupS3Endpoint: os.Getenv("CALIN_BACKUP_S3_ENDPOINT"),
		BackupS3Region:   envOrDefault("CALIN_BACKUP_S3_REGION", "us-east-1"),
		BackupS3Key:      envOrDefault("CALIN_BACKUP_S3_KEY", "calin/backup.jsonl"),
		BackupGitRepo:    os.Getenv("CALIN_BACKUP_GIT_REPO"),
		BackupGitFile:    envOrDefault("CALIN_BACKUP_GIT_FILE", "events.jsonl"),
		BackupGitBranch:  envOrDefault("CALIN_BACKUP_GIT_BRANCH", "main"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("CALIN_DATABASE_URL is required")
	}

	timeoutStr := envOrDefault("CALIN_EXTRACT_TIMEOUT", "30s")
	d, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("CALIN_EXTRACT_TIMEOUT: %w", err)
	}
	c.ExtractTimeout = d

	intervalStr := envOrDefault("CALIN_BACKUP_INTERVAL", "3m")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("CALIN_BACKUP_INTERVAL: %w", err)
		}
		c.BackupInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
