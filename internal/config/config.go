package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string `env:"ADDR" envDefault:":8080"`
	DBDriver       string `env:"DB_DRIVER" envDefault:"sqlite3"`
	DBDSN          string `env:"DB_DSN" envDefault:"file:birdguide.db"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"text"`
	DefaultLocale  string `env:"DEFAULT_LOCALE" envDefault:"en"`

	SpeciesCacheTTL      time.Duration `env:"SPECIES_CACHE_TTL" envDefault:"10m"`
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"6h"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"15m"`

	Auth  AuthConfig
	Auth0 Auth0Config
}

// AuthConfig holds the bearer-token verification settings.
type AuthConfig struct {
	JWTSecret    string `env:"AUTH_JWT_SECRET"`
	JWTPublicKey string `env:"AUTH_JWT_PUBLIC_KEY"`
	JWTIssuer    string `env:"AUTH_JWT_ISSUER"`
	JWTAudience  string `env:"AUTH_JWT_AUDIENCE"`
}

// Auth0Config configures the identity provider management client.
// The client is disabled when Domain is empty.
type Auth0Config struct {
	Domain          string        `env:"AUTH0_DOMAIN"`
	ManagementToken string        `env:"AUTH0_MANAGEMENT_TOKEN"`
	Connection      string        `env:"AUTH0_CONNECTION" envDefault:"Username-Password-Authentication"`
	Timeout         time.Duration `env:"AUTH0_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from a .env file (if present) and environment variables.
// Defaults come from the struct tags; call Validate before using the result.
func Load() (Config, error) {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBDSN) == "" {
		return fmt.Errorf("DB_DSN cannot be empty")
	}
	switch c.DBDriver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite3 or postgres, got %q", c.DBDriver)
	}
	if c.DBMaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.DBMaxOpenConns)
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if strings.TrimSpace(c.DefaultLocale) == "" {
		return fmt.Errorf("DEFAULT_LOCALE cannot be empty")
	}
	if c.SpeciesCacheTTL < 0 {
		return fmt.Errorf("SPECIES_CACHE_TTL cannot be negative")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.SessionSweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	if c.Auth.JWTSecret == "" && c.Auth.JWTPublicKey == "" {
		return fmt.Errorf("one of AUTH_JWT_SECRET or AUTH_JWT_PUBLIC_KEY is required")
	}
	if c.Auth0.Domain != "" && c.Auth0.ManagementToken == "" {
		return fmt.Errorf("AUTH0_MANAGEMENT_TOKEN is required when AUTH0_DOMAIN is set")
	}
	return nil
}
