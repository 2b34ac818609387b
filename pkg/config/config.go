// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for paths, fetching, cache, and the preview server

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Paths contains input and output directory locations
	Paths PathsConfig

	// Fetch contains page fetching configuration
	Fetch FetchConfig

	// Cache contains cache backend configuration
	Cache CacheConfig

	// Preview contains preview server configuration
	Preview PreviewConfig
}

// PathsConfig holds input and output directory locations
type PathsConfig struct {
	// ConfigDir is the directory holding feed group JSON documents
	ConfigDir string

	// OutputDir is the directory feeds and the index page are written to
	OutputDir string
}

// FetchConfig holds page fetching configuration
type FetchConfig struct {
	// TimeoutSeconds is the per-request timeout
	TimeoutSeconds int

	// DetailDelayMS is the pause between successive detail page fetches
	DetailDelayMS int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/sqlite/redis)
	Type string

	// TTLSeconds is the lifetime of cached pages
	TTLSeconds int

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the cache database file location
	Path string
}

// PreviewConfig holds preview server configuration
type PreviewConfig struct {
	// Port is the preview server port
	Port string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Paths: PathsConfig{
			ConfigDir: getEnvOrDefault("CONFIG_DIR", "config"),
			OutputDir: getEnvOrDefault("OUTPUT_DIR", "docs"),
		},
		Fetch: FetchConfig{
			TimeoutSeconds: getEnvAsIntOrDefault("FETCH_TIMEOUT", 20),
			DetailDelayMS:  getEnvAsIntOrDefault("DETAIL_FETCH_DELAY_MS", 800),
		},
		Cache: CacheConfig{
			Type:       getEnvOrDefault("CACHE_TYPE", "memory"),
			TTLSeconds: getEnvAsIntOrDefault("CACHE_TTL", 3600),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_CACHE_PATH", "cache.db"),
			},
		},
		Preview: PreviewConfig{
			Port: getEnvOrDefault("PREVIEW_PORT", "8080"),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Paths.ConfigDir == "" {
		return errors.New("config directory cannot be empty")
	}

	if c.Paths.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}

	if c.Fetch.TimeoutSeconds < 1 {
		return errors.New("fetch timeout must be at least 1 second")
	}

	if c.Fetch.DetailDelayMS < 0 {
		return errors.New("detail fetch delay cannot be negative")
	}

	if c.Cache.Type != "memory" && c.Cache.Type != "sqlite" && c.Cache.Type != "redis" {
		return errors.New("cache type must be 'memory', 'sqlite', or 'redis'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	if c.Preview.Port == "" {
		return errors.New("preview port cannot be empty")
	}

	return nil
}
