package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take precedence
// over values from config files and use the LANGCONTROL_ prefix with
// underscores for nesting (e.g. LANGCONTROL_SERVER_PORT).
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	// Registered with an empty default so AutomaticEnv can bind it.
	v.SetDefault("database.url", "")
	v.SetDefault("review.session_limit", 10)
	v.SetDefault("review.session_ttl_minutes", 120)
	// Policy overrides default to zero, meaning "use the srs defaults".
	for _, key := range []string{
		"review.review_baseline_days",
		"review.min_review_interval_days",
		"review.forgot_multiplier",
		"review.hard_multiplier",
		"review.good_multiplier",
		"review.easy_multiplier",
	} {
		v.SetDefault(key, 0.0)
	}

	// Optional config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables
	v.SetEnvPrefix("LANGCONTROL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
