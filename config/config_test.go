package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("WISHBEE_SERVER_PORT")
		os.Unsetenv("WISHBEE_SERVER_ENVIRONMENT")
		os.Unsetenv("WISHBEE_GENERATION_API_KEY")
		os.Unsetenv("WISHBEE_GENERATION_BASE_URL")
		os.Unsetenv("WISHBEE_GENERATION_MODEL")
		os.Unsetenv("WISHBEE_IMAGE_API_KEY")
		os.Unsetenv("WISHBEE_IMAGE_BASE_URL")
		os.Unsetenv("WISHBEE_FETCHER_TIMEOUT")
		os.Unsetenv("WISHBEE_CACHE_ENABLED")
		os.Unsetenv("WISHBEE_CACHE_TTL")
		os.Unsetenv("WISHBEE_RATELIMIT_PER_MINUTE")
		os.Unsetenv("WISHBEE_RATELIMIT_BURST")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		// Set required API keys
		os.Setenv("WISHBEE_GENERATION_API_KEY", "test-key")
		os.Setenv("WISHBEE_IMAGE_API_KEY", "test-image-key")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Generation.BaseURL != "https://api.openai.com/v1" {
			t.Errorf("Generation.BaseURL = %s, want https://api.openai.com/v1", cfg.Generation.BaseURL)
		}
		if cfg.Generation.Model != "gpt-4o-mini" {
			t.Errorf("Generation.Model = %s, want gpt-4o-mini", cfg.Generation.Model)
		}
		if cfg.Image.BannerModel != "fal-ai/flux/dev" {
			t.Errorf("Image.BannerModel = %s, want fal-ai/flux/dev", cfg.Image.BannerModel)
		}
		if cfg.Fetcher.Timeout != 8*time.Second {
			t.Errorf("Fetcher.Timeout = %v, want 8s", cfg.Fetcher.Timeout)
		}
		if !cfg.Cache.Enabled {
			t.Error("Cache.Enabled = false, want true")
		}
		if cfg.Cache.TTL != 1*time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerMinute != 60 {
			t.Errorf("RateLimit.PerMinute = %d, want 60", cfg.RateLimit.PerMinute)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("WISHBEE_SERVER_PORT", "9090")
		os.Setenv("WISHBEE_SERVER_ENVIRONMENT", "production")
		os.Setenv("WISHBEE_GENERATION_API_KEY", "custom-api-key")
		os.Setenv("WISHBEE_GENERATION_BASE_URL", "https://custom.api.com/v1")
		os.Setenv("WISHBEE_GENERATION_MODEL", "gpt-4o")
		os.Setenv("WISHBEE_IMAGE_API_KEY", "custom-image-key")
		os.Setenv("WISHBEE_FETCHER_TIMEOUT", "5s")
		os.Setenv("WISHBEE_CACHE_TTL", "24h")
		os.Setenv("WISHBEE_RATELIMIT_PER_MINUTE", "120")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Generation.APIKey != "custom-api-key" {
			t.Errorf("Generation.APIKey = %s, want custom-api-key", cfg.Generation.APIKey)
		}
		if cfg.Generation.BaseURL != "https://custom.api.com/v1" {
			t.Errorf("Generation.BaseURL = %s, want https://custom.api.com/v1", cfg.Generation.BaseURL)
		}
		if cfg.Generation.Model != "gpt-4o" {
			t.Errorf("Generation.Model = %s, want gpt-4o", cfg.Generation.Model)
		}
		if cfg.Fetcher.Timeout != 5*time.Second {
			t.Errorf("Fetcher.Timeout = %v, want 5s", cfg.Fetcher.Timeout)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerMinute != 120 {
			t.Errorf("RateLimit.PerMinute = %d, want 120", cfg.RateLimit.PerMinute)
		}
	})

	t.Run("fails validation when generation API key is missing", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("WISHBEE_IMAGE_API_KEY", "test-image-key")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing generation API key")
		}
	})

	t.Run("fails validation when image API key is missing", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("WISHBEE_GENERATION_API_KEY", "test-key")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing image API key")
		}
	})
}

func TestValidate(t *testing.T) {
	validConfig := func() *Config {
		return &Config{
			Generation: GenerationConfig{
				APIKey:  "test-key",
				BaseURL: "https://api.openai.com/v1",
			},
			Image: ImageConfig{
				APIKey: "test-image-key",
			},
			Fetcher: FetcherConfig{
				Timeout: 8 * time.Second,
			},
			RateLimit: RateLimitConfig{
				PerMinute: 60,
				Burst:     10,
			},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(validConfig()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails when generation API key is empty", func(t *testing.T) {
		cfg := validConfig()
		cfg.Generation.APIKey = ""

		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty API key")
		}
	})

	t.Run("fails for non-positive fetcher timeout", func(t *testing.T) {
		cfg := validConfig()
		cfg.Fetcher.Timeout = 0

		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for zero timeout")
		}
	})

	t.Run("allows zero rate limit to disable limiting", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimit.PerMinute = 0

		if err := validate(cfg); err != nil {
			t.Errorf("validate() error = %v, want nil for disabled rate limit", err)
		}
	})

	t.Run("fails for negative rate limit", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimit.PerMinute = -1

		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for negative rate limit")
		}
	})
}
