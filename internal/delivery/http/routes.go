package http

import (
	"github.com/gin-gonic/gin"
	"github.com/wishbee-dev/wishbee-ai/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	if cfg.RateLimit.PerMinute > 0 {
		v1.Use(RateLimitMiddleware(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst))
	}
	{
		// AI endpoints
		ai := v1.Group("/ai")
		{
			ai.POST("/extract-product", handler.ExtractProduct)
			ai.POST("/compare-prices", handler.ComparePrices)
			ai.POST("/enhance-description", handler.EnhanceDescription)
			ai.POST("/generate-banner", handler.GenerateBanner)
			ai.POST("/generate-gift-image", handler.GenerateGiftImage)
			ai.POST("/generate-group-image", handler.GenerateGroupImage)
		}
	}

	return router
}
