package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wishbee-dev/wishbee-ai/internal/domain"
	"github.com/wishbee-dev/wishbee-ai/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	extraction *usecase.ExtractionService
	prices     *usecase.PriceService
	creative   *usecase.CreativeService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	extraction *usecase.ExtractionService,
	prices *usecase.PriceService,
	creative *usecase.CreativeService,
) *Handler {
	return &Handler{
		extraction: extraction,
		prices:     prices,
		creative:   creative,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "wishbee-ai",
	})
}

// ExtractProduct turns a product URL or free-text gift idea into a
// structured product record. An unreachable page still yields a (degraded)
// 200 record; only generation failures surface as 500.
func (h *Handler) ExtractProduct(c *gin.Context) {
	if h.extraction == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Extraction service not configured"})
		return
	}

	var req domain.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	record, err := h.extraction.Extract(c.Request.Context(), req.URL)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
			return
		}
		log.Printf("[API] extraction failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to extract product information",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, record)
}

// ComparePrices returns a trusted-retailer price comparison. Always 200:
// failures resolve to a neutral result rather than an HTTP error, since
// price comparison must never block the caller's primary flow.
func (h *Handler) ComparePrices(c *gin.Context) {
	if h.prices == nil {
		c.JSON(http.StatusOK, domain.NeutralComparison())
		return
	}

	var req domain.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, domain.NeutralComparison())
		return
	}

	c.JSON(http.StatusOK, h.prices.Compare(c.Request.Context(), &req))
}

// EnhanceDescription rewrites a gift description in the requested tone
func (h *Handler) EnhanceDescription(c *gin.Context) {
	if h.creative == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Creative service not configured"})
		return
	}

	var req domain.EnhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description is required"})
		return
	}

	enhanced, err := h.creative.EnhanceDescription(c.Request.Context(), &req)
	if err != nil {
		log.Printf("[API] description enhancement failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enhance description"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"enhancedDescription": enhanced})
}

// GenerateBanner creates a gift-collection banner image
func (h *Handler) GenerateBanner(c *gin.Context) {
	if h.creative == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Creative service not configured"})
		return
	}

	var req domain.BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	bannerURL, err := h.creative.GenerateBanner(c.Request.Context(), req.Title)
	if err != nil {
		log.Printf("[API] banner generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate banner"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bannerUrl": bannerURL})
}

// GenerateGiftImage creates a celebratory gift image, returned inline as
// base64 bytes
func (h *Handler) GenerateGiftImage(c *gin.Context) {
	if h.creative == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Creative service not configured"})
		return
	}

	var req domain.GiftImageRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.RecipientName == "" || req.Occasion == "" || req.GiftName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Recipient name, occasion, and gift name are required",
		})
		return
	}

	image, err := h.creative.GenerateGiftImage(c.Request.Context(), &req)
	if err != nil {
		log.Printf("[API] gift image generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": image})
}

// GenerateGroupImage creates a profile image for a gifting group
func (h *Handler) GenerateGroupImage(c *gin.Context) {
	if h.creative == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Creative service not configured"})
		return
	}

	var req domain.GroupImageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.GroupName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group name is required"})
		return
	}

	imageURL, err := h.creative.GenerateGroupImage(c.Request.Context(), &req)
	if err != nil {
		log.Printf("[API] group image generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate image",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imageUrl": imageURL,
		"success":  true,
	})
}
