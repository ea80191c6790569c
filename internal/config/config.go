package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
// The chat-completion API key is deliberately absent: it is supplied per
// request by the end user and is never part of service configuration.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upload limits and dataset cache.
	MaxUploadBytes   int64
	DatasetCacheSize int

	// Chat-completion endpoint configuration.
	OpenAIBaseURL string
	OpenAIModel   string
	OpenAITimeout time.Duration

	// ReportTemperature is the sampling temperature for report generation.
	// It is part of the report contract rather than a tunable, so it is not
	// read from the environment.
	ReportTemperature float64
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is merged in first if
// present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	openAITimeout, err := parseDuration("OPENAI_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	maxUploadBytes, err := parseInt64("MAX_UPLOAD_BYTES", 10<<20)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parseInt("DATASET_CACHE_SIZE", 16)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		MaxUploadBytes:   maxUploadBytes,
		DatasetCacheSize: cacheSize,

		OpenAIBaseURL: envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   envOrDefault("OPENAI_MODEL", "gpt-4o"),
		OpenAITimeout: openAITimeout,

		ReportTemperature: 0.7,
	}

	if cfg.OpenAIBaseURL == "" {
		return nil, errors.New("OPENAI_BASE_URL must not be empty")
	}
	if cfg.OpenAIModel == "" {
		return nil, errors.New("OPENAI_MODEL must not be empty")
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	if cfg.DatasetCacheSize < 0 {
		return nil, errors.New("DATASET_CACHE_SIZE must not be negative")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseInt64(key string, fallback int64) (int64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}
