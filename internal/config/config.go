// Package config provides application configuration management.
// Configuration is loaded from environment variables following
// 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Auth strategy names.
const (
	AuthStrategyLocal = "local"
	AuthStrategyIdP   = "idp"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Authentication: "local" verifies self-issued HS256 tokens against
	// JWT_SECRET; "idp" delegates verification to the identity
	// provider's userinfo endpoint.
	AuthStrategy   string        `env:"AUTH_STRATEGY" envDefault:"local"`
	JWTSecret      string        `env:"JWT_SECRET"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	IdPUserinfoURL string        `env:"IDP_USERINFO_URL"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORS: comma-separated list of allowed origins.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// GetCORSAllowedOrigins parses the comma-separated origins string.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))
	for _, origin := range origins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing or the selected
// auth strategy lacks its settings.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.AuthStrategy {
	case AuthStrategyLocal:
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required with AUTH_STRATEGY=local")
		}
	case AuthStrategyIdP:
		if cfg.IdPUserinfoURL == "" {
			return nil, fmt.Errorf("IDP_USERINFO_URL is required with AUTH_STRATEGY=idp")
		}
	default:
		return nil, fmt.Errorf("unknown AUTH_STRATEGY %q", cfg.AuthStrategy)
	}

	return cfg, nil
}
