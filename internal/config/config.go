// Package config loads and validates application configuration from
// environment variables and optional config files.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Review   ReviewConfig   `mapstructure:"review"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// ReviewConfig contains the tunable review-session and scheduling policy.
// Zero values fall back to the srs package defaults.
type ReviewConfig struct {
	// SessionLimit caps how many due cards seed a single review session.
	SessionLimit int `mapstructure:"session_limit" validate:"gt=0"`

	// SessionTTLMinutes is how long an idle session is kept before purging.
	SessionTTLMinutes int `mapstructure:"session_ttl_minutes" validate:"gte=0"`

	// Scheduling policy overrides, all optional.
	ReviewBaselineDays    float64 `mapstructure:"review_baseline_days"     validate:"gte=0"`
	MinReviewIntervalDays float64 `mapstructure:"min_review_interval_days" validate:"gte=0"`
	ForgotMultiplier      float64 `mapstructure:"forgot_multiplier"        validate:"gte=0"`
	HardMultiplier        float64 `mapstructure:"hard_multiplier"          validate:"gte=0"`
	GoodMultiplier        float64 `mapstructure:"good_multiplier"          validate:"gte=0"`
	EasyMultiplier        float64 `mapstructure:"easy_multiplier"          validate:"gte=0"`
}
