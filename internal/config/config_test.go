package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/birdguide/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                 ":8080",
		DBDriver:             "sqlite3",
		DBDSN:                "test.db",
		DBMaxOpenConns:       10,
		LogLevel:             "INFO",
		LogFormat:            "text",
		DefaultLocale:        "en",
		SpeciesCacheTTL:      time.Minute,
		SessionTTL:           time.Hour,
		SessionSweepInterval: time.Minute,
		Auth:                 config.AuthConfig{JWTSecret: "secret"},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "empty addr",
			mutate: func(c *config.Config) { c.Addr = "" },
			want:   "ADDR cannot be empty",
		},
		{
			name:   "empty dsn",
			mutate: func(c *config.Config) { c.DBDSN = " " },
			want:   "DB_DSN cannot be empty",
		},
		{
			name:   "unknown driver",
			mutate: func(c *config.Config) { c.DBDriver = "mysql" },
			want:   "DB_DRIVER",
		},
		{
			name:   "zero pool size",
			mutate: func(c *config.Config) { c.DBMaxOpenConns = 0 },
			want:   "DB_MAX_OPEN_CONNS",
		},
		{
			name:   "unknown log level",
			mutate: func(c *config.Config) { c.LogLevel = "TRACE" },
			want:   "LOG_LEVEL",
		},
		{
			name:   "unknown log format",
			mutate: func(c *config.Config) { c.LogFormat = "xml" },
			want:   "LOG_FORMAT",
		},
		{
			name:   "negative cache ttl",
			mutate: func(c *config.Config) { c.SpeciesCacheTTL = -time.Second },
			want:   "SPECIES_CACHE_TTL",
		},
		{
			name:   "zero session ttl",
			mutate: func(c *config.Config) { c.SessionTTL = 0 },
			want:   "SESSION_TTL",
		},
		{
			name:   "zero sweep interval",
			mutate: func(c *config.Config) { c.SessionSweepInterval = 0 },
			want:   "SESSION_SWEEP_INTERVAL",
		},
		{
			name:   "no jwt key material",
			mutate: func(c *config.Config) { c.Auth = config.AuthConfig{} },
			want:   "AUTH_JWT_SECRET",
		},
		{
			name:   "auth0 domain without token",
			mutate: func(c *config.Config) { c.Auth0.Domain = "example.auth0.com" },
			want:   "AUTH0_MANAGEMENT_TOKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_LogLevelCaseInsensitive(t *testing.T) {
	for _, level := range []string{"debug", "Info", "warning", "ERROR"} {
		cfg := validConfig()
		cfg.LogLevel = level
		assert.NoError(t, cfg.Validate(), "level %s", level)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, "file:birdguide.db", cfg.DBDSN)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, 10*time.Minute, cfg.SpeciesCacheTTL)
	assert.Equal(t, 6*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "Username-Password-Authentication", cfg.Auth0.Connection)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "postgres://localhost/birdguide?sslmode=disable")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH0_DOMAIN", "birdguide.eu.auth0.com")
	t.Setenv("AUTH0_MANAGEMENT_TOKEN", "token")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, "birdguide.eu.auth0.com", cfg.Auth0.Domain)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")

	_, err := config.Load()
	assert.Error(t, err)
}
