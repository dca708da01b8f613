package config

import (
	"os"
	"strconv"

	"github.com/PlumpMath/ExcelToDataSetReader/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Ingest   IngestConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// IngestConfig holds ingestion limits
type IngestConfig struct {
	MaxUploadBytes   int64
	BatchConcurrency int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   loadServerConfig(),
		Database: loadDatabaseConfig(),
	}

	ingestConfig, err := loadIngestConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load ingest configuration")
	}
	config.Ingest = *ingestConfig

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port: getEnv("PORT", "8080"),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	// DATABASE_URL is optional; without it the server runs with no
	// dataset store and keeps results in memory for the request only.
	return DatabaseConfig{
		URL: os.Getenv("DATABASE_URL"),
	}
}

func loadIngestConfig() (*IngestConfig, error) {
	maxUpload, err := getEnvInt64("MAX_UPLOAD_BYTES", 64<<20)
	if err != nil {
		return nil, err
	}
	concurrency, err := getEnvInt("BATCH_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}
	if concurrency < 1 {
		return nil, errors.ConfigInvalid("BATCH_CONCURRENCY must be at least 1")
	}
	return &IngestConfig{
		MaxUploadBytes:   maxUpload,
		BatchConcurrency: concurrency,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer")
	}
	return n, nil
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer")
	}
	return n, nil
}
