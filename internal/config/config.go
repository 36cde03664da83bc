package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	DataDir      string // directory holding ingredients/effects/traits tables
	DataBundle   string // optional single JSON bundle; overrides DataDir when set
	OutputDir    string // directory the rendered pages are written to
	SiteManifest string // optional YAML site manifest for the renderer
	Workers      int    // parallelism of the enumeration phase; 1 = sequential
	LogLevel     string
	LogFormat    string
	Environment  string
	ServiceName  string
	Version      string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:      getEnv("DATA_DIR", "data"),
		DataBundle:   getEnv("DATA_BUNDLE", ""),
		OutputDir:    getEnv("OUTPUT_DIR", "docs"),
		SiteManifest: getEnv("SITE_MANIFEST", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		Environment:  getEnv("ENVIRONMENT", "dev"),
		ServiceName:  getEnv("SERVICE_NAME", "alchemist"),
		Version:      getEnv("VERSION", "dev"),
	}

	workersStr := getEnv("WORKERS", strconv.Itoa(runtime.NumCPU()))
	workers, err := strconv.Atoi(workersStr)
	if err != nil {
		return nil, fmt.Errorf("invalid WORKERS value: %w", err)
	}
	if workers < 1 {
		workers = 1
	}
	cfg.Workers = workers

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
