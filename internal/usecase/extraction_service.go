package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/wishbee-dev/wishbee-ai/internal/domain"
)

// ExtractionServiceConfig holds configuration for the extraction service
type ExtractionServiceConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ExtractionService turns a product URL or free-text gift idea into a
// structured product record.
// URL flow: fetch page -> mine images + normalize text -> generation
// service -> parse -> defaults. A failed fetch degrades to URL-only
// inference; a failed generation call is fatal to the request.
type ExtractionService struct {
	generator    domain.TextGenerator
	fetcher      domain.PageFetcher
	miner        *ImageMiner
	cache        domain.CacheRepository
	cacheEnabled bool
	cacheTTL     time.Duration
}

// NewExtractionService creates a new extraction service with dependencies
func NewExtractionService(
	generator domain.TextGenerator,
	fetcher domain.PageFetcher,
	cache domain.CacheRepository,
	config ExtractionServiceConfig,
) *ExtractionService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &ExtractionService{
		generator:    generator,
		fetcher:      fetcher,
		miner:        NewImageMiner(),
		cache:        cache,
		cacheEnabled: config.CacheEnabled && cache != nil,
		cacheTTL:     cacheTTL,
	}
}

// generatedProduct is the JSON shape requested from the generation
// service. Typed decoding rejects malformed fields (a non-numeric price
// fails the parse) instead of passing them through.
type generatedProduct struct {
	ProductName string            `json:"productName"`
	Price       *float64          `json:"price"`
	Description string            `json:"description"`
	StoreName   string            `json:"storeName"`
	Category    string            `json:"category"`
	ImageURL    *string           `json:"imageUrl"`
	ProductLink *string           `json:"productLink"`
	StockStatus string            `json:"stockStatus"`
	Attributes  map[string]string `json:"attributes"`
	Notice      string            `json:"notice"`
}

// Extract produces a ProductRecord from input, which is either a product
// URL (http/https prefix) or a free-text gift idea.
func (s *ExtractionService) Extract(ctx context.Context, input string) (*domain.ProductRecord, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, domain.ErrInvalidRequest
	}

	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		return s.extractFromIdea(ctx, input)
	}

	return s.extractFromURL(ctx, input)
}

// extractFromIdea asks the generation service to research a product
// matching a free-text gift idea.
func (s *ExtractionService) extractFromIdea(ctx context.Context, idea string) (*domain.ProductRecord, error) {
	log.Printf("[Extract] input is a gift idea, researching product")

	text, err := s.generator.Complete(ctx, giftIdeaPrompt(idea), domain.GenerateOptions{MaxTokens: 1500})
	if err != nil {
		return nil, err
	}

	var payload generatedProduct
	if err := RecoverJSON(text, &payload); err != nil {
		return nil, err
	}

	record := payloadToRecord(&payload)
	record.IsFromGiftIdea = true
	record.Notice = "Product details generated from your gift idea. You can refine by pasting a specific product URL."

	return record, nil
}

// extractFromURL fetches the product page (best effort) and extracts
// structured data from its content, falling back to URL-only inference
// when the page is unreachable.
func (s *ExtractionService) extractFromURL(ctx context.Context, pageURL string) (*domain.ProductRecord, error) {
	log.Printf("[Extract] extracting product from URL")

	cacheKey := extractionCacheKey(pageURL)
	if s.cacheEnabled {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
			log.Printf("[Extract] cache hit")
			return cached, nil
		}
	}

	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Hostname() == "" {
		return nil, fmt.Errorf("%w: invalid url", domain.ErrInvalidRequest)
	}

	storeName := storeNameFromHost(parsed.Hostname())

	// Known retailer product paths encode the image location; seed it
	// ahead of anything mined from the page.
	var seedImages []string
	if synthesized := synthesizeRetailerImage(parsed); synthesized != "" {
		seedImages = append(seedImages, synthesized)
	}

	var bestImage string
	var pageContent string
	fetchSucceeded := false

	html, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			return nil, err
		}
		log.Printf("[Extract] page unavailable, using URL-based extraction")
	} else {
		fetchSucceeded = true

		candidates := seedImages
		seen := make(map[string]bool, len(candidates))
		for _, c := range candidates {
			seen[c] = true
		}
		for _, mined := range s.miner.Mine(html, pageURL) {
			if !seen[mined] {
				seen[mined] = true
				candidates = append(candidates, mined)
			}
		}

		bestImage = s.miner.BestImage(candidates)
		pageContent = NormalizeText(html)

		log.Printf("[Extract] mined %d image candidates", len(candidates))
	}

	var prompt string
	if fetchSucceeded && pageContent != "" {
		prompt = contentExtractionPrompt(pageURL, bestImage, pageContent)
	} else {
		prompt = urlOnlyExtractionPrompt(pageURL, storeName)
	}

	text, err := s.generator.Complete(ctx, prompt, domain.GenerateOptions{MaxTokens: 2000})
	if err != nil {
		return nil, err
	}

	var payload generatedProduct
	if err := RecoverJSON(text, &payload); err != nil {
		return nil, err
	}

	record := payloadToRecord(&payload)

	if record.ImageURL == nil {
		log.Printf("[Extract] no product image found, caller may supply one")
		record.ProductURLForImage = pageURL
		if record.Notice == "" {
			record.Notice = "Product image could not be extracted automatically. You can paste an image URL or upload an image manually."
		}
	}
	if record.ProductLink == nil {
		link := pageURL
		record.ProductLink = &link
	}

	if s.cacheEnabled {
		if err := s.cache.Set(ctx, cacheKey, record, s.cacheTTL); err != nil {
			log.Printf("[Extract] cache set failed: %v", err)
		}
	}

	return record, nil
}

// payloadToRecord converts the parsed generation payload into a record
// with defaults applied: empty attributes map, normalized category and
// stock status, and "null" image strings collapsed to nil.
func payloadToRecord(payload *generatedProduct) *domain.ProductRecord {
	imageURL := payload.ImageURL
	if imageURL != nil && (*imageURL == "" || *imageURL == "null") {
		imageURL = nil
	}

	attributes := payload.Attributes
	if attributes == nil {
		attributes = map[string]string{}
	}

	return &domain.ProductRecord{
		ProductName: payload.ProductName,
		Price:       payload.Price,
		Description: payload.Description,
		StoreName:   payload.StoreName,
		Category:    domain.NormalizeCategory(payload.Category),
		ImageURL:    imageURL,
		ProductLink: payload.ProductLink,
		StockStatus: domain.NormalizeStockStatus(payload.StockStatus),
		Attributes:  attributes,
		Notice:      payload.Notice,
	}
}

// storeNameFromHost derives a display store name from a hostname:
// first label after a leading "www.", capitalized.
func storeNameFromHost(host string) string {
	host = strings.TrimPrefix(host, "www.")
	label := strings.SplitN(host, ".", 2)[0]
	if label == "" {
		return ""
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

// extractionCacheKey normalizes a page URL into a cache key
func extractionCacheKey(pageURL string) string {
	return "extract:" + strings.ToLower(strings.TrimRight(pageURL, "/"))
}

// synthesizeRetailerImage handles retailers whose product URLs encode the
// image location directly. Isolated lookup-table entries only; these are
// site-specific conventions with no generalization rule.
func synthesizeRetailerImage(parsed *url.URL) string {
	if !strings.Contains(parsed.Host+parsed.Path, "dsw.com/product/") &&
		!(strings.HasSuffix(parsed.Hostname(), "dsw.com") && strings.Contains(parsed.Path, "/product/")) {
		return ""
	}

	parts := strings.Split(strings.TrimRight(parsed.Path, "/"), "/")
	productID := parts[len(parts)-1]
	colorCode := parsed.Query().Get("activeColor")

	if productID == "" || colorCode == "" {
		return ""
	}

	return fmt.Sprintf(
		"https://images.dsw.com/is/image/DSWShoes/%s_%s_ss_01?impolicy=qlt-medium-high&imwidth=640&imdensity=2",
		productID, colorCode,
	)
}
