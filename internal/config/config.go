package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from POSTS_-prefixed environment variables.
type Config struct {
	// HTTP server
	ListenAddr  string        `envconfig:"LISTEN_ADDR" default:":8080"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"` // for upstream API

	// Upstream source
	BaseURL       string `envconfig:"BASE_URL" default:"https://jsonplaceholder.typicode.com"`
	SourceName    string `envconfig:"SOURCE_NAME" default:"placeholder_api"`
	IngestOnStart bool   `envconfig:"INGEST_ON_START" default:"true"`

	// Postgres (explicit pieces)
	PGHost     string `envconfig:"PG_HOST" default:"postgres"` // "localhost" outside compose
	PGPort     int    `envconfig:"PG_PORT" default:"5432"`
	PGUser     string `envconfig:"PG_USER" default:"app"`
	PGPassword string `envconfig:"PG_PASSWORD" default:"app"`
	PGDatabase string `envconfig:"PG_DATABASE" default:"ingestor"`
	PGSSLMode  string `envconfig:"PG_SSLMODE" default:"disable"` // "require" in cloud

	Debug bool `envconfig:"DEBUG" default:"false"`
}

// New loads the configuration from the environment and validates it.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("POSTS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("POSTS_BASE_URL must not be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("POSTS_HTTP_TIMEOUT must be > 0, got %s", c.HTTPTimeout)
	}
	if c.PGPort <= 0 || c.PGPort > 65535 {
		return fmt.Errorf("POSTS_PG_PORT out of range: %d", c.PGPort)
	}
	return nil
}

// BuildDSN composes a keyword/value DSN compatible with pgxpool.
func (c Config) BuildDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PGHost, c.PGPort, c.PGUser, c.PGPassword, c.PGDatabase, c.PGSSLMode,
	)
}
