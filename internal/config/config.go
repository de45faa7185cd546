package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
)

type Config struct {
	Port string

	// Auth. Empty disables bearer checks.
	APIKey string

	// Outline inference
	MaxPages      int
	HeadingLevels int

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Batch mode
	InputDir     string
	OutputDir    string
	InputPattern string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("DOCOUTLINE_API_KEY"),

		MaxPages:      envInt("MAX_PAGES", 50),
		HeadingLevels: envInt("HEADING_LEVELS", 3),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		InputDir:     envOr("INPUT_DIR", "input"),
		OutputDir:    envOr("OUTPUT_DIR", "output"),
		InputPattern: envOr("INPUT_PATTERN", "**/*.pdf"),
	}

	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 50
	}
	if cfg.HeadingLevels <= 0 || cfg.HeadingLevels > 6 {
		cfg.HeadingLevels = 3
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// Outline derives the inference parameters.
func (c Config) Outline() outline.Config {
	oc := outline.DefaultConfig()
	oc.MaxPages = c.MaxPages
	oc.HeadingLevels = c.HeadingLevels
	return oc
}

func (c Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("INPUT_DIR is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR is required")
	}
	if c.InputPattern == "" {
		return fmt.Errorf("INPUT_PATTERN is required")
	}
	if err := c.Outline().Validate(); err != nil {
		return fmt.Errorf("outline settings: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
