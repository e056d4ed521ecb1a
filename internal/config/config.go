// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :3000).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// JWTSecret signs access tokens. Required outside of tests.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTExpiresIn is the access token lifetime (e.g. "24h"). Also returned to
	// clients verbatim as expiresIn.
	JWTExpiresIn string `mapstructure:"JWT_EXPIRES_IN"`
	// JWTRefreshSecret signs refresh tokens. Must differ from JWTSecret so that
	// compromise of one signing key cannot forge the other token type.
	JWTRefreshSecret string `mapstructure:"JWT_REFRESH_SECRET"`
	// JWTRefreshExpiresIn is the refresh token lifetime (e.g. "168h"). Drives
	// both the refresh JWT exp and the stored session expires_at.
	JWTRefreshExpiresIn string `mapstructure:"JWT_REFRESH_EXPIRES_IN"`
	// BcryptCost is the bcrypt cost factor (4–31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// CleanupSchedule is the cron spec the session-cleanup worker runs on.
	CleanupSchedule string `mapstructure:"CLEANUP_SCHEDULE"`
	// LogLevel is the logrus level name (debug, info, warn, error).
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment via Viper. Missing .env is ignored (e.g. in CI). Env vars
// override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":3000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRES_IN", "24h")
	v.SetDefault("JWT_REFRESH_SECRET", "")
	v.SetDefault("JWT_REFRESH_EXPIRES_IN", "168h") // 7d
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("CLEANUP_SCHEDULE", "@hourly")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.Env == "production" {
		if cfg.JWTSecret == "" || cfg.JWTRefreshSecret == "" {
			return nil, errors.New("config: JWT_SECRET and JWT_REFRESH_SECRET must be set when APP_ENV=production")
		}
	}
	if cfg.JWTSecret != "" && cfg.JWTSecret == cfg.JWTRefreshSecret {
		return nil, errors.New("config: JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	return &cfg, nil
}

// AccessTTL parses JWTExpiresIn as a time.Duration. Returns 24h if unset or invalid.
func (c *Config) AccessTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTExpiresIn)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// RefreshTTL parses JWTRefreshExpiresIn as a time.Duration. Returns 168h if unset or invalid.
func (c *Config) RefreshTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTRefreshExpiresIn)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}
