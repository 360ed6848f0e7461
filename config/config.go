package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Generation GenerationConfig
	Image      ImageConfig
	Fetcher    FetcherConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GenerationConfig holds text generation service configuration
type GenerationConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// ImageConfig holds image generation service configuration
type ImageConfig struct {
	APIKey      string `mapstructure:"api_key"`
	BaseURL     string `mapstructure:"base_url"`
	BannerModel string `mapstructure:"banner_model"`
	FastModel   string `mapstructure:"fast_model"`
}

// FetcherConfig holds product page fetcher configuration
type FetcherConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds extraction cache configuration
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds per-IP rate limiting configuration
type RateLimitConfig struct {
	PerMinute int `mapstructure:"per_minute"`
	Burst     int `mapstructure:"burst"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/wishbee/")

	// Environment variable settings
	v.SetEnvPrefix("WISHBEE")
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Generation service defaults
	v.SetDefault("generation.base_url", "https://api.openai.com/v1")
	v.SetDefault("generation.model", "gpt-4o-mini")

	// Image service defaults
	v.SetDefault("image.base_url", "https://fal.run")
	v.SetDefault("image.banner_model", "fal-ai/flux/dev")
	v.SetDefault("image.fast_model", "fal-ai/flux/schnell")

	// Fetcher defaults
	v.SetDefault("fetcher.timeout", "8s")

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "1h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_minute", 60)
	v.SetDefault("ratelimit.burst", 10)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Generation.APIKey == "" {
		return fmt.Errorf("generation API key is required (set WISHBEE_GENERATION_API_KEY)")
	}

	if config.Image.APIKey == "" {
		return fmt.Errorf("image API key is required (set WISHBEE_IMAGE_API_KEY)")
	}

	if config.Fetcher.Timeout <= 0 {
		return fmt.Errorf("fetcher timeout must be positive, got: %s", config.Fetcher.Timeout)
	}

	// Zero disables rate limiting entirely.
	if config.RateLimit.PerMinute < 0 {
		return fmt.Errorf("rate limit per_minute must not be negative, got: %d", config.RateLimit.PerMinute)
	}

	return nil
}
