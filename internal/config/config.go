// Package config loads and validates application configuration from a
// YAML file with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix for environment overrides, e.g.
// USERHUB_JWT__SECRET_KEY maps to jwt.secret_key.
const envPrefix = "USERHUB_"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Log       LogConfig       `koanf:"log"`
	JWT       JWTConfig       `koanf:"jwt"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              string        `koanf:"port"`
	MetricsPort       string        `koanf:"metrics_port"`
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	IdleTimeout       time.Duration `koanf:"idle_timeout"`
}

// DatabaseConfig contains PostgreSQL settings.
type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnectTimeout  time.Duration `koanf:"connect_timeout"`
	ConnectAttempts int           `koanf:"connect_attempts"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// JWTConfig contains token signing settings. The secret key is fixed
// at startup and never rotated by this service.
type JWTConfig struct {
	SecretKey string        `koanf:"secret_key"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

// CORSConfig contains CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// RateLimitConfig contains login throttling settings.
type RateLimitConfig struct {
	LoginRPS   float64 `koanf:"login_rps"`
	LoginBurst int     `koanf:"login_burst"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              "8080",
			MetricsPort:       "9090",
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
			ConnectTimeout:  30 * time.Second,
			ConnectAttempts: 5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		JWT: JWTConfig{
			TokenTTL: time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			LoginRPS:   1,
			LoginBurst: 10,
		},
	}
}

// Load reads configuration from the given YAML file (optional) and
// environment variables, applied on top of defaults. It validates the
// result so misconfiguration is a startup failure, not a per-request
// one.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
		key = strings.ReplaceAll(key, "__", ".")
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings are present. A missing
// signing key or database URL is fatal: the process must not start.
func (c *Config) Validate() error {
	var errs []error

	if c.Database.URL == "" {
		errs = append(errs, errors.New("database.url is required (USERHUB_DATABASE__URL)"))
	}
	if c.JWT.SecretKey == "" {
		errs = append(errs, errors.New("jwt.secret_key is required (USERHUB_JWT__SECRET_KEY)"))
	}
	if c.JWT.TokenTTL <= 0 {
		errs = append(errs, errors.New("jwt.token_ttl must be positive"))
	}

	return errors.Join(errs...)
}
