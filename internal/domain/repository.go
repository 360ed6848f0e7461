package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching extraction results
type CacheRepository interface {
	Get(ctx context.Context, key string) (*ProductRecord, error)
	Set(ctx context.Context, key string, record *ProductRecord, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// TextGenerator defines the interface for the external text generation
// capability. Complete returns the raw model output for a prompt.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// GenerateOptions tunes a single text generation call.
type GenerateOptions struct {
	MaxTokens   int
	Temperature float64
}

// ImageGenerator defines the interface for the external image generation
// capability.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string, params ImageParams) (string, error)
	Download(ctx context.Context, imageURL string) ([]byte, error)
}

// ImageParams tunes a single image generation call. The defaults are
// applied per endpoint; banner generation uses high step counts so the
// embedded title text renders legibly.
type ImageParams struct {
	Model          string
	Size           string
	InferenceSteps int
	GuidanceScale  float64
}

// PageFetcher defines the interface for retrieving product page HTML.
// A failed or slow fetch resolves to ErrPageUnavailable, never blocks
// past its budget, and is not retried.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}
