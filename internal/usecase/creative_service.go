package usecase

import (
	"context"
	"encoding/base64"
	"log"

	"github.com/wishbee-dev/wishbee-ai/internal/domain"
)

// CreativeServiceConfig names the image models each operation uses.
type CreativeServiceConfig struct {
	// BannerModel is a slower, high-step model tuned for legible embedded
	// text; FastModel is used where text rendering does not matter.
	BannerModel string
	FastModel   string
}

// CreativeService wraps the description-enhancement and image-generation
// operations. Each call is independent and stateless.
type CreativeService struct {
	generator domain.TextGenerator
	images    domain.ImageGenerator
	config    CreativeServiceConfig
}

// NewCreativeService creates a new creative service with dependencies
func NewCreativeService(
	generator domain.TextGenerator,
	images domain.ImageGenerator,
	config CreativeServiceConfig,
) *CreativeService {
	return &CreativeService{
		generator: generator,
		images:    images,
		config:    config,
	}
}

// EnhanceDescription rewrites a gift description in the requested tone.
func (s *CreativeService) EnhanceDescription(ctx context.Context, req *domain.EnhanceRequest) (string, error) {
	if req == nil || req.Description == "" {
		return "", domain.ErrInvalidRequest
	}

	text, err := s.generator.Complete(ctx, enhanceDescriptionPrompt(req), domain.GenerateOptions{
		MaxTokens:   300,
		Temperature: 0.8,
	})
	if err != nil {
		return "", err
	}

	return text, nil
}

// GenerateBanner creates a gift-collection banner carrying the title as
// rendered text. Inference steps and guidance are fixed constants tuned
// for text legibility.
func (s *CreativeService) GenerateBanner(ctx context.Context, title string) (string, error) {
	if title == "" {
		return "", domain.ErrInvalidRequest
	}

	return s.images.Generate(ctx, bannerPrompt(title), domain.ImageParams{
		Model:          s.config.BannerModel,
		Size:           "landscape_16_9",
		InferenceSteps: 50,
		GuidanceScale:  5.0,
	})
}

// GenerateGiftImage creates a celebratory image for a gift collection and
// returns it inlined as base64 rather than a short-lived hosted URL.
func (s *CreativeService) GenerateGiftImage(ctx context.Context, req *domain.GiftImageRequest) (*domain.InlineImage, error) {
	if req == nil || req.RecipientName == "" || req.Occasion == "" || req.GiftName == "" {
		return nil, domain.ErrInvalidRequest
	}

	imageURL, err := s.images.Generate(ctx, giftImagePrompt(req), domain.ImageParams{
		Model:          s.config.FastModel,
		Size:           "landscape_16_9",
		InferenceSteps: 4,
	})
	if err != nil {
		return nil, err
	}

	data, err := s.images.Download(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	return &domain.InlineImage{
		Base64:    base64.StdEncoding.EncodeToString(data),
		MediaType: "image/jpeg",
	}, nil
}

// GenerateGroupImage creates a profile image for a gifting group.
func (s *CreativeService) GenerateGroupImage(ctx context.Context, req *domain.GroupImageRequest) (string, error) {
	if req == nil || req.GroupName == "" {
		return "", domain.ErrInvalidRequest
	}

	log.Printf("[Creative] generating group image for %q", req.GroupName)

	return s.images.Generate(ctx, groupImagePrompt(req), domain.ImageParams{
		Model:          s.config.FastModel,
		Size:           "square_hd",
		InferenceSteps: 4,
	})
}
