package domain

// Categories a product can be classified into. The generation service is
// instructed to pick exactly one of these; anything else is normalized to
// CategoryGeneral.
const (
	CategoryElectronics = "Electronics"
	CategoryClothing    = "Clothing"
	CategoryHomeKitchen = "Home & Kitchen"
	CategoryBeauty      = "Beauty"
	CategorySports      = "Sports"
	CategoryToys        = "Toys"
	CategoryBooks       = "Books"
	CategoryGeneral     = "General"
)

// Stock status values for an extracted product.
const (
	StockInStock    = "In Stock"
	StockLowStock   = "Low Stock"
	StockOutOfStock = "Out of Stock"
	StockUnknown    = "Unknown"
)

// KnownCategories lists every category the service recognizes.
var KnownCategories = []string{
	CategoryElectronics, CategoryClothing, CategoryHomeKitchen,
	CategoryBeauty, CategorySports, CategoryToys, CategoryBooks,
	CategoryGeneral,
}

// ProductRecord is the structured result of a product extraction. It lives
// for a single request/response cycle and is never persisted.
type ProductRecord struct {
	ProductName    string            `json:"productName"`
	Price          *float64          `json:"price"`
	Description    string            `json:"description"`
	StoreName      string            `json:"storeName"`
	Category       string            `json:"category"`
	ImageURL       *string           `json:"imageUrl"`
	ProductLink    *string           `json:"productLink"`
	StockStatus    string            `json:"stockStatus"`
	Attributes     map[string]string `json:"attributes"`
	Notice         string            `json:"notice,omitempty"`
	IsFromGiftIdea bool              `json:"isFromGiftIdea,omitempty"`

	// ProductURLForImage carries the original page URL when no image could
	// be mined, so the caller can recover one manually.
	ProductURLForImage string `json:"productUrlForImageExtraction,omitempty"`
}

// NormalizeCategory maps arbitrary generation output onto a known category.
func NormalizeCategory(category string) string {
	for _, known := range KnownCategories {
		if category == known {
			return known
		}
	}
	return CategoryGeneral
}

// NormalizeStockStatus maps arbitrary generation output onto a known stock
// status. URL-only extractions produce phrases like "Unknown - Check store
// website", which collapse to StockUnknown.
func NormalizeStockStatus(status string) string {
	switch status {
	case StockInStock, StockLowStock, StockOutOfStock:
		return status
	}
	return StockUnknown
}

// ExtractRequest is the payload for the extract-product endpoint. Input is
// either a product URL or a free-text gift idea.
type ExtractRequest struct {
	URL string `json:"url" binding:"required"`
}

// EnhanceRequest is the payload for the enhance-description endpoint.
type EnhanceRequest struct {
	Description   string `json:"description"`
	RecipientName string `json:"recipientName"`
	Occasion      string `json:"occasion"`
	Tone          string `json:"tone"`
}

// BannerRequest is the payload for the generate-banner endpoint.
type BannerRequest struct {
	Title string `json:"title"`
}

// GiftImageRequest is the payload for the generate-gift-image endpoint.
type GiftImageRequest struct {
	RecipientName string `json:"recipientName"`
	Occasion      string `json:"occasion"`
	GiftName      string `json:"giftName"`
}

// GroupImageRequest is the payload for the generate-group-image endpoint.
type GroupImageRequest struct {
	GroupName   string `json:"groupName"`
	Description string `json:"description"`
}

// InlineImage is an image returned as inlined bytes rather than a URL.
type InlineImage struct {
	Base64    string `json:"base64"`
	MediaType string `json:"mediaType"`
}
