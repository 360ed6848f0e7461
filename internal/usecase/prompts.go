package usecase

import (
	"fmt"
	"strings"

	"github.com/wishbee-dev/wishbee-ai/internal/domain"
)

// Prompt builders. The exact wording is a contract: each prompt requests a
// specific JSON shape and the caller parses exactly that shape back.

func giftIdeaPrompt(idea string) string {
	return fmt.Sprintf(`You are a product research assistant. A user wants: "%s"

Based on this gift idea, research and provide detailed product information. Return ONLY a JSON object:

{
  "productName": "specific best-selling product name that matches (e.g., 'Nike Air Max 270 Running Shoes' for 'nike shoe')",
  "price": competitive market price in USD (numeric value),
  "description": "Detailed product description with key features and specifications (4-6 sentences)",
  "storeName": "popular retailer (Amazon, Nike.com, Target, Best Buy, etc.)",
  "category": "ONE of: Electronics, Clothing, Home & Kitchen, Beauty, Sports, Toys, Books, or General",
  "imageUrl": null,
  "productLink": null,
  "stockStatus": "In Stock",
  "attributes": {}
}

Research the best-selling, highest-rated product in this category at competitive pricing from trusted stores.
Return ONLY valid JSON, no markdown, no explanation.`, idea)
}

func contentExtractionPrompt(pageURL, bestImage, pageContent string) string {
	imageLine := ""
	if bestImage != "" {
		imageLine = fmt.Sprintf("Product Image URL (USE THIS EXACTLY): %s\n", bestImage)
	}
	imageValue := bestImage
	if imageValue == "" {
		imageValue = "null"
	}

	return fmt.Sprintf(`Extract complete product information from this webpage. Return ONLY a JSON object with these exact fields:

Webpage URL: %s
%sWebpage Content: %s

Extract ALL available information:
{
  "productName": "exact product title from the page",
  "price": numeric price value only (e.g., 299.99),
  "description": "COMPLETE detailed product description including ALL key features, specifications, materials, dimensions, and benefits from the webpage (minimum 4-6 sentences with full details)",
  "storeName": "store/retailer name (e.g., Amazon, Target, DSW, etc.)",
  "category": "ONE of: Electronics, Clothing, Home & Kitchen, Beauty, Sports, Toys, Books, or General (determine from product type)",
  "imageUrl": "%s",
  "productLink": "%s",
  "stockStatus": "In Stock" or "Low Stock" or "Out of Stock",
  "attributes": {}
}

CRITICAL RULES:
- Extract the COMPLETE product description with ALL details available on the page
- Determine the most appropriate category from the product type
- For imageUrl, copy EXACTLY this URL without ANY modifications: %s
- Do NOT truncate the description - include all important product information
- Return ONLY valid JSON, no markdown, no explanation, no other text`,
		pageURL, imageLine, pageContent, imageValue, pageURL, imageValue)
}

func urlOnlyExtractionPrompt(pageURL, storeName string) string {
	return fmt.Sprintf(`The website is blocking automated access. Based on this product URL, analyze the URL path and generate realistic product information. Return ONLY a JSON object:

URL: %s
Store: %s

Analyze the URL carefully to infer:
{
  "productName": "product name inferred from URL path and parameters",
  "price": null,
  "description": "Realistic product description based on what the URL suggests. Since we cannot access the page, we've inferred this from the URL. Please verify details on %s's website.",
  "storeName": "%s",
  "category": "General",
  "imageUrl": null,
  "productLink": "%s",
  "stockStatus": "Unknown",
  "attributes": {},
  "notice": "This site blocks automated access. Product details are inferred from the URL. Please verify all information including color, size, and specifications by visiting the store directly."
}

Return ONLY valid JSON, no other text.`,
		pageURL, storeName, storeName, storeName, pageURL)
}

func priceComparisonPrompt(req *domain.CompareRequest) string {
	return fmt.Sprintf(`You are a price comparison assistant. Find the best price for this product from TRUSTED retailers only.

Product: %s
Current Price: $%.2f
Current Store: %s
Product Link: %s

TRUSTED RETAILERS: %s

Search for this product and return ONLY prices from the trusted retailers list above. Ignore any suspicious, unknown, or scam websites.

Return your findings in this exact JSON format:
{
  "hasBetterPrice": true/false,
  "bestPrice": price as number or null,
  "bestStore": "Store Name" or null,
  "bestStoreLink": "https://..." or null,
  "savings": amount saved as number or null,
  "trustScore": 1-10 rating of the recommended store's trustworthiness,
  "note": "Brief explanation of the price comparison"
}

If no better price is found from trusted retailers, set hasBetterPrice to false and explain why in the note.`,
		req.ProductName, req.CurrentPrice, req.CurrentStore, req.ProductLink,
		strings.Join(domain.TrustedDomains, ", "))
}

// toneInstructions maps each supported tone onto prompt phrasing.
var toneInstructions = map[string]string{
	"heartfelt":    "warm, emotional, and sentimental",
	"casual":       "friendly, relaxed, and conversational",
	"professional": "polished, formal, and respectful",
	"funny":        "humorous, lighthearted, and playful",
}

func enhanceDescriptionPrompt(req *domain.EnhanceRequest) string {
	instruction, ok := toneInstructions[req.Tone]
	if !ok {
		instruction = toneInstructions["heartfelt"]
	}

	return fmt.Sprintf(`Enhance this gift description to be more %s:

Original: "%s"

Context:
- Recipient: %s
- Occasion: %s

Make it compelling and encourage people to contribute. Keep it between 100-200 words.`,
		instruction, req.Description, req.RecipientName, req.Occasion)
}

func bannerPrompt(title string) string {
	return fmt.Sprintf(`Create a premium gift collection banner with MANDATORY TEXT RENDERING:

CRITICAL TEXT REQUIREMENTS (MUST FOLLOW):
- EXACT TEXT TO DISPLAY: "%s"
- Display EVERY SINGLE WORD from the title above
- Font size: EXTRA LARGE (minimum 120pt equivalent)
- Font: Bold, modern sans-serif (Montserrat Black, Poppins ExtraBold style)
- Text position: DEAD CENTER, horizontally and vertically aligned
- Text color: Pure WHITE (#FFFFFF) with thick gold stroke outline (#F4C430, 4px width)
- Add strong drop shadow (black, 50%% opacity, 8px blur) for maximum contrast
- Text must occupy 80%% of banner width
- Letter spacing: slightly expanded for elegance
- ALL LETTERS must be crystal clear and perfectly legible

BACKGROUND DESIGN:
- Luxurious celebration theme with wrapped gifts, gold ribbons, silk bows
- Gradient background: soft gold (#DAA520) to warm cream (#FFF8DC)
- Add floating confetti, sparkles, and bokeh light effects
- Semi-transparent dark overlay (20%% opacity) behind text area for contrast
- Elegant depth with layered gift elements

STYLE & QUALITY:
- Ultra-modern, high-end aesthetic
- Professional typography with premium feel
- Celebratory yet sophisticated mood
- Landscape 16:9 format
- Sharp focus on text, subtle blur on background elements
- Color palette: gold, cream, white, soft rose accents

ABSOLUTELY CRITICAL: The complete title text "%s" MUST be fully visible, centered, and perfectly readable as the main focal point of the banner.`,
		title, title)
}

func giftImagePrompt(req *domain.GiftImageRequest) string {
	return fmt.Sprintf(`Create a beautiful, celebratory banner image for a group gift collection:
- Recipient: %s
- Occasion: %s
- Gift: %s

Style: Warm, festive, celebratory with gift boxes, confetti, and elegant typography. High quality, professional design.`,
		req.RecipientName, req.Occasion, req.GiftName)
}

func groupImagePrompt(req *domain.GroupImageRequest) string {
	return fmt.Sprintf(`A warm and welcoming group photo for "%s". %s. Professional, friendly atmosphere with diverse people smiling together. High quality, well-lit, suitable for a group profile picture.`,
		req.GroupName, req.Description)
}
