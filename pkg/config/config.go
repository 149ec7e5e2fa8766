package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	Env         string `env:"ENV" env-default:"development"`
	MetricsPort string `env:"METRICS_PORT" env-default:"9090"`

	Mongo    MongoConfig
	Postgres PostgresConfig
	Tracing  TracingConfig

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type MongoConfig struct {
	URI                string `env:"MONGO_URI" env-required:"true"`
	Database           string `env:"MONGO_DATABASE" env-default:"events"`
	CommentsCollection string `env:"COMMENTS_COLLECTION" env-default:"comments"`
	UsersCollection    string `env:"USERS_COLLECTION" env-default:"users"`
	EventsCollection   string `env:"EVENTS_COLLECTION" env-default:"events"`
}

// PostgresConfig is optional. With a connection string users are read from Postgres.
type PostgresConfig struct {
	ConnStr string `env:"POSTGRES_CONN_STR"`
}

// TracingConfig is optional. An empty endpoint disables trace export.
type TracingConfig struct {
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME" env-default:"event-comments"`
}

// Addr is the API listen address
func (c *Config) Addr() string {
	return net.JoinHostPort("", c.Port)
}

// MetricsAddr is the metrics listen address
func (c *Config) MetricsAddr() string {
	return net.JoinHostPort("", c.MetricsPort)
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values cleanenv cannot express in tags
func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return errors.New("config: MONGO_URI is required")
	}
	if c.Mongo.Database == "" {
		return errors.New("config: MONGO_DATABASE must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}
