package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full service configuration, assembled from environment
// variables. Defaults target local development only; deployments are expected
// to supply every value explicitly.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Consul    ConsulConfig
	Jaeger    JaegerConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Name string `env:"SERVICE_NAME" envDefault:"vehicle-service"`
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"3000"`
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"3306"`
	User     string `env:"DB_USER" envDefault:"root"`
	Password string `env:"DB_PASS" envDefault:"root"`
	Database string `env:"DB_DATABASE" envDefault:"vehicles"`
	MaxIdle  int    `env:"DB_MAX_IDLE" envDefault:"10"`
	MaxOpen  int    `env:"DB_MAX_OPEN" envDefault:"100"`
}

// ConsulConfig controls optional service registration and KV config override.
// An empty Host disables both.
type ConsulConfig struct {
	Host  string `env:"CONSUL_HOST"`
	Port  int    `env:"CONSUL_PORT" envDefault:"8500"`
	KVKey string `env:"CONSUL_KV_KEY"`
}

// JaegerConfig controls tracing. An empty Endpoint disables it.
type JaegerConfig struct {
	Endpoint string  `env:"JAEGER_ENDPOINT"`
	Sampler  float64 `env:"JAEGER_SAMPLER" envDefault:"1.0"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"` // json, text
	Output string `env:"LOG_OUTPUT" envDefault:"stdout"`
	Path   string `env:"LOG_PATH" envDefault:"logs/app.log"`
}

// RateLimitConfig sizes the per-process token bucket. Capacity 0 disables
// rate limiting.
type RateLimitConfig struct {
	Capacity   int64 `env:"RATE_LIMIT_CAPACITY" envDefault:"0"`
	RefillRate int64 `env:"RATE_LIMIT_REFILL" envDefault:"100"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	return cfg, nil
}
