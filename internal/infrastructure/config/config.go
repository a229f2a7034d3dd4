package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Session   SessionConfig
	Monitor   MonitorConfig
	Logging   LogConfig
	Status    StatusConfig
	RateLimit RateLimitConfig
}

// SessionConfig holds shell session configuration.
type SessionConfig struct {
	HistorySize  int   `envconfig:"HISTORY_SIZE" default:"10"`
	RandomSeed   int64 `envconfig:"RANDOM_SEED" default:"0"` // 0 seeds from the clock
	MaxLineBytes int   `envconfig:"MAX_LINE_BYTES" default:"1048576"`
}

// MonitorConfig holds background monitor configuration.
type MonitorConfig struct {
	Interval    time.Duration `envconfig:"MONITOR_INTERVAL" default:"30s"`
	Probability float64       `envconfig:"MONITOR_PROBABILITY" default:"0.3"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
	Output      string `envconfig:"LOG_OUTPUT" default:"stderr"`
}

// StatusConfig holds the read-only status server configuration.
type StatusConfig struct {
	Enabled bool   `envconfig:"STATUS_ENABLED" default:"false"`
	Host    string `envconfig:"STATUS_HOST" default:"127.0.0.1"`
	Port    string `envconfig:"STATUS_PORT" default:"8077"`
}

// RateLimitConfig holds status server rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"40"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate checks values envconfig cannot constrain.
func (c *Config) Validate() error {
	if c.Session.HistorySize <= 0 {
		return fmt.Errorf("invalid HISTORY_SIZE %d: must be positive", c.Session.HistorySize)
	}
	if c.Session.MaxLineBytes <= 0 {
		return fmt.Errorf("invalid MAX_LINE_BYTES %d: must be positive", c.Session.MaxLineBytes)
	}
	if c.Monitor.Interval <= 0 {
		return fmt.Errorf("invalid MONITOR_INTERVAL %s: must be positive", c.Monitor.Interval)
	}
	if c.Monitor.Probability < 0 || c.Monitor.Probability > 1 {
		return fmt.Errorf("invalid MONITOR_PROBABILITY %v: must be within [0,1]", c.Monitor.Probability)
	}
	return nil
}

// StatusAddr returns the listen address of the status server.
func (c *Config) StatusAddr() string {
	return c.Status.Host + ":" + c.Status.Port
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Session: SessionConfig{
			HistorySize:  10,
			RandomSeed:   0,
			MaxLineBytes: 1 << 20,
		},
		Monitor: MonitorConfig{
			Interval:    30 * time.Second,
			Probability: 0.3,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
			Output:      "stderr",
		},
		Status: StatusConfig{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    "8077",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           true,
		},
	}
}
