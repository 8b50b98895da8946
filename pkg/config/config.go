package config

import (
	"fmt"
	"time"
)

// Config holds runtime configuration for the warung bot.
type Config struct {
	AppEnv        string              `mapstructure:"-"`
	Bot           BotConfig           `mapstructure:"bot" validate:"required"`
	Database      DatabaseConfig      `mapstructure:"database" validate:"required"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Server        ServerConfig        `mapstructure:"server" validate:"required"`
	Logger        LoggerConfig        `mapstructure:"logger"`
	Sentry        SentryConfig        `mapstructure:"sentry"`
	Session       SessionConfig       `mapstructure:"session"`
	Currency      CurrencyConfig      `mapstructure:"currency"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	RateLimit     RateLimitConfig     `mapstructure:"ratelimit"`
}

// BotConfig configures the Telegram transport.
type BotConfig struct {
	Token        string        `mapstructure:"token" validate:"required"`
	Mode         string        `mapstructure:"mode" validate:"omitempty,oneof=polling webhook"`
	Timeout      time.Duration `mapstructure:"timeout"`
	WebhookURL   string        `mapstructure:"webhook_url" validate:"required_if=Mode webhook,omitempty,url"`
	WebhookPort  string        `mapstructure:"webhook_port"`
	SuperAdminID int64         `mapstructure:"super_admin_id" validate:"gte=0"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           string `mapstructure:"port" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password"`
	Name           string `mapstructure:"name" validate:"required"`
	SSLMode        string `mapstructure:"sslmode"`
	MaxConnections int    `mapstructure:"max_connections" validate:"gte=0"`
}

// RedisConfig mirrors pkg/redis.Config for the loader.
type RedisConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Addr            string        `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password        string        `mapstructure:"password"`
	DB              int           `mapstructure:"db"`
	PoolSize        int           `mapstructure:"pool_size"`
	MinIdleConns    int           `mapstructure:"min_idle_conns"`
	PoolTimeout     time.Duration `mapstructure:"pool_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	MaxRetries      int           `mapstructure:"max_retries"`
	MinRetryBackoff time.Duration `mapstructure:"min_retry_backoff"`
	MaxRetryBackoff time.Duration `mapstructure:"max_retry_backoff"`
}

// ServerConfig configures the HTTP server for metrics, probes and the CRUD API.
type ServerConfig struct {
	Port            string        `mapstructure:"port" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	APIToken        string        `mapstructure:"api_token"`
}

// LoggerConfig controls slog output.
type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"omitempty,oneof=json text"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// SentryConfig toggles error reporting.
type SentryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn" validate:"required_if=Enabled true"`
}

// SessionConfig bounds the lifetime of abandoned wizard sessions. A zero TTL keeps sessions until overwritten.
type SessionConfig struct {
	TTL           time.Duration `mapstructure:"ttl" validate:"gte=0"`
	SweepInterval time.Duration `mapstructure:"sweep_interval" validate:"gte=0"`
}

// CurrencyConfig controls how prices are rendered in chat messages.
type CurrencyConfig struct {
	Symbol         string `mapstructure:"symbol"`
	Locale         string `mapstructure:"locale"`
	FractionDigits int    `mapstructure:"fraction_digits" validate:"gte=0,lte=4"`
}

// NotificationsConfig selects how customer status notifications are delivered.
type NotificationsConfig struct {
	Async bool `mapstructure:"async"`
}

// RateLimitConfig describes the limiter rules.
type RateLimitConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Global    RateLimitRule `mapstructure:"global"`
	PerUser   RateLimitRule `mapstructure:"per_user"`
	Checkout  RateLimitRule `mapstructure:"checkout"`
	Whitelist []int64       `mapstructure:"whitelist"`
}

// RateLimitRule is a limit per window, the window being a Go duration string.
type RateLimitRule struct {
	Limit  int    `mapstructure:"limit" validate:"gte=0"`
	Window string `mapstructure:"window"`
}

// DSN returns the PostgreSQL connection string.
func (c DatabaseConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Name,
		sslMode,
	)
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}
