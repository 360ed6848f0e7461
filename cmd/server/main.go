package main

import (
	"fmt"
	"log"
	"os"

	"github.com/wishbee-dev/wishbee-ai/config"
	httpDelivery "github.com/wishbee-dev/wishbee-ai/internal/delivery/http"
	"github.com/wishbee-dev/wishbee-ai/internal/infrastructure/cache"
	"github.com/wishbee-dev/wishbee-ai/internal/infrastructure/fetcher"
	"github.com/wishbee-dev/wishbee-ai/internal/infrastructure/imagegen"
	"github.com/wishbee-dev/wishbee-ai/internal/infrastructure/llm"
	"github.com/wishbee-dev/wishbee-ai/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Wishbee AI Service")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	generator := llm.NewClient(cfg.Generation.APIKey, cfg.Generation.BaseURL, cfg.Generation.Model)
	images := imagegen.NewClient(cfg.Image.APIKey, cfg.Image.BaseURL)
	pageFetcher := fetcher.NewFetcher(cfg.Fetcher.Timeout)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		generator.SetDebug(true)
		log.Printf("Generation client debug mode enabled")
	}

	log.Printf("Generation service: %s (model: %s)", cfg.Generation.BaseURL, cfg.Generation.Model)
	log.Printf("Image service: %s (banner: %s, fast: %s)",
		cfg.Image.BaseURL, cfg.Image.BannerModel, cfg.Image.FastModel)
	log.Printf("Fetcher timeout: %s", cfg.Fetcher.Timeout)

	var resultCache *cache.MemoryCache
	if cfg.Cache.Enabled {
		resultCache = cache.NewMemoryCache()
		log.Printf("Extraction cache enabled (TTL: %s)", cfg.Cache.TTL)
	}

	// Initialize usecase layer
	extractionService := usecase.NewExtractionService(
		generator,
		pageFetcher,
		resultCache,
		usecase.ExtractionServiceConfig{
			CacheEnabled: cfg.Cache.Enabled,
			CacheTTL:     cfg.Cache.TTL,
		},
	)

	priceService := usecase.NewPriceService(generator)

	creativeService := usecase.NewCreativeService(
		generator,
		images,
		usecase.CreativeServiceConfig{
			BannerModel: cfg.Image.BannerModel,
			FastModel:   cfg.Image.FastModel,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(extractionService, priceService, creativeService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
