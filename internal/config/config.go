// Package config loads the timecop configuration from the environment,
// with optional .env file support for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root application configuration.
type Config struct {
	ClickUp  ClickUpConfig
	Audit    AuditConfig
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
}

// ClickUpConfig holds upstream API credentials and connection settings.
type ClickUpConfig struct {
	APIToken       string `env:"CLICKUP_API_KEY"`
	TeamID         string `env:"CLICKUP_TEAM_ID"`
	BaseURL        string `env:"CLICKUP_BASE_URL" env-default:"https://api.clickup.com/api/v2"`
	TimeoutSeconds int    `env:"CLICKUP_TIMEOUT_SECONDS" env-default:"30"`
}

// Timeout returns the request timeout as a duration.
func (c ClickUpConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AuditConfig holds the fraud-detection thresholds.
type AuditConfig struct {
	ShortThresholdSeconds int64   `env:"AUDIT_SHORT_THRESHOLD_SECONDS" env-default:"300"`
	DefaultWindowHours    float64 `env:"AUDIT_DEFAULT_WINDOW_HOURS" env-default:"9.5"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string   `env:"SERVER_HOST" env-default:"0.0.0.0"`
	Port           int      `env:"SERVER_PORT" env-default:"8000"`
	AllowedOrigins []string `env:"SERVER_ALLOWED_ORIGINS"`
	MaxBodySize    int64    `env:"SERVER_MAX_BODY_SIZE" env-default:"1048576"`
}

// DatabaseConfig holds the sqlite run-history settings.
type DatabaseConfig struct {
	Path string `env:"DATABASE_PATH" env-default:"./timecop.db"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("config: load .env: %w", err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Audit.ShortThresholdSeconds <= 0 {
		return fmt.Errorf("AUDIT_SHORT_THRESHOLD_SECONDS must be positive (got %d)", c.Audit.ShortThresholdSeconds)
	}
	if c.Audit.DefaultWindowHours <= 0 {
		return fmt.Errorf("AUDIT_DEFAULT_WINDOW_HOURS must be positive (got %v)", c.Audit.DefaultWindowHours)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT out of range: %d", c.Server.Port)
	}
	if c.ClickUp.TimeoutSeconds <= 0 {
		return fmt.Errorf("CLICKUP_TIMEOUT_SECONDS must be positive (got %d)", c.ClickUp.TimeoutSeconds)
	}
	return nil
}

// RequireClickUp verifies that the upstream credentials are present.
// Commands that talk to ClickUp call this; purely local commands do not.
func (c *Config) RequireClickUp() error {
	if c.ClickUp.APIToken == "" || c.ClickUp.TeamID == "" {
		return fmt.Errorf("missing required environment variables: CLICKUP_API_KEY and CLICKUP_TEAM_ID")
	}
	return nil
}
