// Package config loads application configuration from environment variables
// and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Credential store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds the configuration for both binaries.
type Config struct {
	BaseURL     string            `yaml:"base_url" env:"SHIPADMIN_BASE_URL" env-default:"http://localhost:5000"`
	HTTPTimeout time.Duration     `yaml:"http_timeout" env:"SHIPADMIN_HTTP_TIMEOUT" env-default:"0s"`
	LogLevel    string            `yaml:"log_level" env:"SHIPADMIN_LOG_LEVEL" env-default:"info"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Stub        StubConfig        `yaml:"stub"`
}

// CredentialsConfig selects and configures the credential store.
type CredentialsConfig struct {
	Backend  string `yaml:"backend" env:"SHIPADMIN_CREDENTIAL_BACKEND" env-default:"sqlite"`
	DBPath   string `yaml:"db_path" env:"SHIPADMIN_DB_PATH"`
	RedisURL string `yaml:"redis_url" env:"SHIPADMIN_REDIS_URL"`
	Scope    string `yaml:"scope" env:"SHIPADMIN_SCOPE" env-default:"default"`

	// Secret, when set, seals sqlite values at rest.
	Secret string `yaml:"secret" env:"SHIPADMIN_SECRET"`
}

// StubConfig configures cmd/shipstub.
type StubConfig struct {
	ListenAddr      string        `yaml:"listen_addr" env:"SHIPADMIN_STUB_LISTEN_ADDR" env-default:"127.0.0.1:5000"`
	JWTSecret       string        `yaml:"jwt_secret" env:"SHIPADMIN_STUB_JWT_SECRET"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"SHIPADMIN_STUB_ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"SHIPADMIN_STUB_REFRESH_TOKEN_TTL" env-default:"720h"`
	SeedPath        string        `yaml:"seed_path" env:"SHIPADMIN_STUB_SEED"`
}

// Level parses LogLevel into a slog.Level.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Load reads configuration. When path is empty, SHIPADMIN_CONFIG names the
// YAML file; with neither set only environment variables are read.
// Environment variables always override values from the file.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("SHIPADMIN_CONFIG")
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if cfg.Credentials.DBPath == "" {
		cfg.Credentials.DBPath = defaultDBPath()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("SHIPADMIN_BASE_URL must not be empty")
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("SHIPADMIN_HTTP_TIMEOUT must not be negative, got %s", c.HTTPTimeout)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("SHIPADMIN_LOG_LEVEL has invalid level %q: %w", c.LogLevel, err)
	}

	switch c.Credentials.Backend {
	case BackendSQLite, BackendMemory:
	case BackendRedis:
		if c.Credentials.RedisURL == "" {
			return errors.New("SHIPADMIN_REDIS_URL is required when SHIPADMIN_CREDENTIAL_BACKEND=redis")
		}
	default:
		return fmt.Errorf("SHIPADMIN_CREDENTIAL_BACKEND must be one of sqlite, redis, memory, got %q", c.Credentials.Backend)
	}

	if c.Credentials.Scope == "" {
		return errors.New("SHIPADMIN_SCOPE must not be empty")
	}
	return nil
}

// defaultDBPath places the credential database under the user's config
// directory, falling back to the working directory.
func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "shipadmin.db"
	}
	return filepath.Join(dir, "shipadmin", "credentials.db")
}
