// Package config handles loading of application settings from the
// environment and of the files a conversion job reads: job descriptions and
// per-language JSON documents.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// DefaultMaxFileBytes caps a single language file at 5 MiB.
const DefaultMaxFileBytes = 5 * 1024 * 1024

// Config holds all configuration for the application,
// typically loaded from environment variables (populated by the .env file in main.go).
type Config struct {
	MongoConnString string `env:"MONGO_CONNECTION_STRING"`
	MongoDatabase   string `env:"MONGO_DATABASE" envDefault:"mydb"`
	MongoCollection string `env:"MONGO_COLLECTION" envDefault:"UilmResourceKeys"`

	SQLConnString string `env:"SQL_CONNECTION_STRING"`
	SQLTable      string `env:"SQL_TABLE" envDefault:"uilm_resource_keys"`

	// State persistence: Redis when REDIS_URL is set, a JSON file in StateDir otherwise.
	RedisURL string `env:"REDIS_URL"`
	StateDir string `env:"UILM_STATE_DIR" envDefault:"."`

	ServerHost string `env:"UILM_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"UILM_SERVER_PORT" envDefault:"8080"`

	RateLimitRPS   float64 `env:"UILM_RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"UILM_RATE_LIMIT_BURST" envDefault:"20"`

	LogFile  string `env:"UILM_LOG_FILE"`
	LogLevel string `env:"UILM_LOG_LEVEL" envDefault:"info"`

	MaxFileBytes int64 `env:"UILM_MAX_FILE_BYTES" envDefault:"5242880"`
	BatchSize    int   `env:"UILM_BATCH_SIZE" envDefault:"100"`
}

// LoadConfig parses environment variables into a Config.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = DefaultMaxFileBytes
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("UILM_BATCH_SIZE must be positive, got %d", cfg.BatchSize)
	}
	return cfg, nil
}

// ServerAddr returns the HTTP listen address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisState reports whether saved state lives in Redis.
func (c Config) UseRedisState() bool {
	return c.RedisURL != ""
}
