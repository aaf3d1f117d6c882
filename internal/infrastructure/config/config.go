package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	EnvDemo = "demo"
	EnvLive = "live"
)

// Snapshot backends.
const (
	BackendFS       = "fs"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendOracle   = "oracle"
)

type Config struct {
	APIKey          string
	Environment     string
	Mode            string
	SnapshotBackend string
	SnapshotDir     string
	SnapshotDSN     string
	ServerPort      string
	ServerHost      string
	RefreshInterval time.Duration
	LogLevel        string
}

// Demo reports whether the broker's practice environment is targeted.
func (c *Config) Demo() bool {
	return c.Environment == EnvDemo
}

func Load() (*Config, error) {
	apiKey := os.Getenv("T212_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("T212_API_KEY environment variable is required")
	}

	env := strings.ToLower(getEnvOrDefault("T212_ENV", EnvDemo))
	if env != EnvDemo && env != EnvLive {
		return nil, fmt.Errorf("invalid T212_ENV %q: must be %s or %s", env, EnvDemo, EnvLive)
	}

	backend := strings.ToLower(getEnvOrDefault("SNAPSHOT_BACKEND", BackendFS))
	dir := getEnvOrDefault("SNAPSHOT_DIR", "db_t212")
	dsn := os.Getenv("SNAPSHOT_DSN")

	switch backend {
	case BackendFS, BackendMemory:
	case BackendSQLite:
		if dsn == "" {
			dsn = filepath.Join(dir, "snapshots.db")
		}
	case BackendPostgres, BackendOracle:
		if dsn == "" {
			return nil, fmt.Errorf("SNAPSHOT_DSN environment variable is required for the %s backend", backend)
		}
	default:
		return nil, fmt.Errorf("unsupported SNAPSHOT_BACKEND: %s", backend)
	}

	refreshInterval, err := time.ParseDuration(getEnvOrDefault("REFRESH_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	if refreshInterval < 0 {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: must not be negative")
	}

	return &Config{
		APIKey:          apiKey,
		Environment:     env,
		Mode:            os.Getenv("T212_MODE"),
		SnapshotBackend: backend,
		SnapshotDir:     dir,
		SnapshotDSN:     dsn,
		ServerPort:      getEnvOrDefault("SERVER_PORT", "8080"),
		ServerHost:      getEnvOrDefault("SERVER_HOST", "localhost"),
		RefreshInterval: refreshInterval,
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
