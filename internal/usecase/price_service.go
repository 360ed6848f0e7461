package usecase

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/wishbee-dev/wishbee-ai/internal/domain"
)

// PriceService finds better prices for an already-extracted product among
// trusted retailers. A best-effort enrichment: any upstream failure
// resolves to a neutral result rather than an error, so the caller's
// primary flow is never blocked.
type PriceService struct {
	generator domain.TextGenerator
}

// NewPriceService creates a new price comparison service
func NewPriceService(generator domain.TextGenerator) *PriceService {
	return &PriceService{generator: generator}
}

// Compare asks the generation service for a better trusted-retailer price
// and re-validates the suggested store link against the trust registry.
// The model's claim is never trusted blindly.
func (s *PriceService) Compare(ctx context.Context, req *domain.CompareRequest) *domain.PriceComparisonResult {
	if req == nil || req.ProductName == "" {
		return domain.NeutralComparison()
	}

	log.Printf("[Compare] comparing prices for %q at $%.2f", req.ProductName, req.CurrentPrice)

	text, err := s.generator.Complete(ctx, priceComparisonPrompt(req), domain.GenerateOptions{MaxTokens: 1000})
	if err != nil {
		log.Printf("[Compare] generation failed: %v", err)
		return domain.NeutralComparison()
	}

	var result domain.PriceComparisonResult
	if err := RecoverJSON(text, &result); err != nil {
		log.Printf("[Compare] unparseable response: %v", err)
		return domain.NeutralComparison()
	}

	if result.HasBetterPrice && result.BestStoreLink != nil {
		if !domain.IsTrustedLink(*result.BestStoreLink) {
			log.Printf("[Compare] suggested store is not trusted: %s", hostnameOf(*result.BestStoreLink))
			result.HasBetterPrice = false
			result.Note = "No better prices found from verified trusted retailers."
		}
	} else if result.HasBetterPrice {
		// A better price claim without a link is unverifiable.
		result.HasBetterPrice = false
		result.Note = "No better prices found from verified trusted retailers."
	}

	return &result
}

// hostnameOf extracts a hostname for logging, tolerating junk input
func hostnameOf(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return link
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}
