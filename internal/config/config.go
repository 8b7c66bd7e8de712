package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	DataDir         string
	RefreshInterval time.Duration
	LogLevel        string
}

// LoadConfig loads configuration from environment variables or defaults
func LoadConfig() *Config {
	return &Config{
		DataDir:         getEnv("EVENT_DATA_DIR", "data"),
		RefreshInterval: time.Duration(getEnvInt("EVENT_REFRESH_INTERVAL", 30)) * time.Second,
		LogLevel:        getEnv("EVENT_LOG_LEVEL", "info"),
	}
}

// StorePath returns the path of the event database inside the data dir.
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, "event.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
