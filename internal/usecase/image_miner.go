package usecase

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Package-level compiled regex patterns for image mining
var (
	// imageSuffixPattern matches URLs carrying a recognized image extension
	imageSuffixPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp)`)

	// absoluteImagePattern matches absolute URLs ending in an image extension
	absoluteImagePattern = regexp.MustCompile(`(?i)https?://[^\s"']+\.(jpg|jpeg|png|webp)`)

	// vectorOrGifPattern rejects formats that are never product photos
	vectorOrGifPattern = regexp.MustCompile(`(?i)\.(svg|gif)$`)

	// imagesPathPattern matches conventional /images/<file>.<ext> paths
	imagesPathPattern = regexp.MustCompile(`(?i)/images/[^/]+\.(jpg|jpeg|png|webp)`)

	// scriptStatePattern matches global client-state assignments embedded in
	// script blocks (window.__INITIAL_STATE__ = {...}; and friends)
	scriptStatePattern = regexp.MustCompile(`(?i)(?:window\.__INITIAL_STATE__|__PRELOADED_STATE__|productData|product_data)\s*=\s*(\{[^;]+\});`)

	// mediaCDNResizePatterns strip resize-suffix tokens from media CDN
	// filenames to recover the full-resolution image
	// (.../I/abc._AC_SX300_.jpg -> .../I/abc.jpg)
	mediaCDNResizePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\._AC_[A-Z]{2}\d+_\.`),
		regexp.MustCompile(`\._[A-Z]{2}\d+_\.`),
	}
)

// mediaCDNPath identifies the known media CDN whose URLs carry resize
// suffixes and always point at product photos.
const mediaCDNPath = "media-amazon.com/images/I/"

// imgDenySubstrings reject chrome, navigation, and tracking imagery in
// <img src> candidates.
var imgDenySubstrings = []string{
	"sprite", "nav-", "logo", "icon", "arrow", "button", "fashion-store",
	"banner", "header", "footer", "thumbnail-placeholder",
	"blank.gif", "pixel.gif", "spacer", "lazy", "placeholder",
}

// imgAllowSubstrings accept product-ish <img src> candidates.
var imgAllowSubstrings = []string{
	mediaCDNPath, "product", "item", "catalog", "merchandise", "goods",
	"cloudfront", "cdn", "assets",
}

// imageKeyHints mark JSON keys worth following when deep-searching
// embedded client-state blobs.
var imageKeyHints = []string{"image", "photo", "picture"}

// dataAttrHints mark data-* attribute names worth reading. Wider than
// imageKeyHints: markup commonly abbreviates to data-img.
var dataAttrHints = []string{"image", "img", "photo", "picture"}

// extractStrategy finds image candidates in a parsed page. Strategies run
// in priority order; each appends URLs not yet seen.
type extractStrategy func(doc *goquery.Document, rawHTML string, base *url.URL) []string

// ImageMiner produces a deduplicated, priority-ordered list of product
// image candidates from a page. Strategy order defines "best": meta tags
// first, then structured data, embedded script state, data attributes, and
// finally plain <img> variants.
type ImageMiner struct {
	strategies []extractStrategy
}

// NewImageMiner creates a miner with the default strategy chain
func NewImageMiner() *ImageMiner {
	return &ImageMiner{
		strategies: []extractStrategy{
			mineMetaTags,
			mineJSONLD,
			mineScriptState,
			mineDataAttributes,
			mineImgSrc,
			mineImgDataSrc,
			mineImgSrcset,
		},
	}
}

// Mine runs every strategy over the HTML and returns the ordered,
// deduplicated candidate list. Relative URLs are resolved against pageURL.
func (m *ImageMiner) Mine(html, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var candidates []string
	seen := make(map[string]bool)

	for _, strategy := range m.strategies {
		for _, candidate := range strategy(doc, html, base) {
			if candidate == "" || seen[candidate] {
				continue
			}
			seen[candidate] = true
			candidates = append(candidates, candidate)
		}
	}

	return candidates
}

// BestImage returns the highest-priority candidate, or "" if none found.
func (m *ImageMiner) BestImage(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0]
}

// mineMetaTags extracts og:image and twitter:image meta content.
func mineMetaTags(doc *goquery.Document, _ string, base *url.URL) []string {
	var found []string

	doc.Find(`meta[property="og:image"], meta[name="twitter:image"]`).Each(func(_ int, s *goquery.Selection) {
		content, ok := s.Attr("content")
		if !ok || !imageSuffixPattern.MatchString(content) {
			return
		}
		if resolved := resolveImageURL(content, base); resolved != "" {
			found = append(found, resolved)
		}
	})

	return found
}

// mineJSONLD parses application/ld+json blocks and pulls their image field,
// handling string, array, object-with-url, and array-wrapped document
// variants.
func mineJSONLD(doc *goquery.Document, _ string, base *url.URL) []string {
	var found []string

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := s.Text()

		var parsed interface{}
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return // skip invalid JSON blocks
		}

		imgURL := jsonLDImage(parsed)
		if imgURL == "" {
			if items, ok := parsed.([]interface{}); ok {
				for _, item := range items {
					if imgURL = jsonLDImage(item); imgURL != "" {
						break
					}
				}
			}
		}

		if imgURL == "" || !imageSuffixPattern.MatchString(imgURL) {
			return
		}
		if resolved := resolveImageURL(imgURL, base); resolved != "" {
			found = append(found, resolved)
		}
	})

	return found
}

// jsonLDImage extracts an image URL from one JSON-LD node's "image" field.
func jsonLDImage(node interface{}) string {
	obj, ok := node.(map[string]interface{})
	if !ok {
		return ""
	}

	img, ok := obj["image"]
	if !ok {
		return ""
	}

	if arr, ok := img.([]interface{}); ok {
		if len(arr) == 0 {
			return ""
		}
		img = arr[0]
	}

	switch v := img.(type) {
	case string:
		return v
	case map[string]interface{}:
		if u, ok := v["url"].(string); ok {
			return u
		}
	}
	return ""
}

// mineScriptState finds embedded client-state assignments, parses them as
// JSON, and deep-searches image-ish keys.
func mineScriptState(_ *goquery.Document, rawHTML string, _ *url.URL) []string {
	var found []string

	for _, match := range scriptStatePattern.FindAllStringSubmatch(rawHTML, -1) {
		var state interface{}
		if err := json.Unmarshal([]byte(match[1]), &state); err != nil {
			continue // skip unparseable state blobs
		}

		for _, img := range deepFindImages(state) {
			if strings.Contains(img, "sprite") || strings.Contains(img, "placeholder") {
				continue
			}
			found = append(found, img)
		}
	}

	return found
}

// deepFindImages walks arbitrary decoded JSON collecting image URL leaves
// under keys whose name suggests an image.
func deepFindImages(node interface{}) []string {
	var images []string

	switch v := node.(type) {
	case string:
		if absoluteImagePattern.MatchString(v) {
			images = append(images, v)
		}
	case []interface{}:
		for _, item := range v {
			images = append(images, deepFindImages(item)...)
		}
	case map[string]interface{}:
		for key, value := range v {
			if isImageKey(key) {
				switch val := value.(type) {
				case string:
					if absoluteImagePattern.MatchString(val) {
						images = append(images, val)
					}
				case []interface{}:
					for _, item := range val {
						switch entry := item.(type) {
						case string:
							if absoluteImagePattern.MatchString(entry) {
								images = append(images, entry)
							}
						case map[string]interface{}:
							if u, ok := entry["url"].(string); ok {
								images = append(images, u)
							}
						}
					}
				}
			}
			images = append(images, deepFindImages(value)...)
		}
	}

	return images
}

// isImageKey reports whether a JSON key name suggests image content.
func isImageKey(key string) bool {
	lower := strings.ToLower(key)
	for _, hint := range imageKeyHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// isImageDataAttr reports whether a data-* attribute name suggests image
// content.
func isImageDataAttr(key string) bool {
	lower := strings.ToLower(key)
	for _, hint := range dataAttrHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// mineDataAttributes scans data-* attributes whose name suggests an image
// and whose value is an absolute image URL.
func mineDataAttributes(doc *goquery.Document, _ string, _ *url.URL) []string {
	var found []string

	doc.Find("[data-image], [data-img], [data-photo], [data-picture], [data-image-url], [data-img-url], [data-zoom-image], [data-large-image]").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range s.Nodes[0].Attr {
			if !strings.HasPrefix(attr.Key, "data-") || !isImageDataAttr(attr.Key) {
				continue
			}
			val := attr.Val
			if !absoluteImagePattern.MatchString(val) {
				continue
			}
			if strings.Contains(val, "sprite") || strings.Contains(val, "placeholder") {
				continue
			}
			found = append(found, val)
		}
	})

	return found
}

// mineImgSrc extracts <img src> candidates through the deny/allow filters.
func mineImgSrc(doc *goquery.Document, _ string, base *url.URL) []string {
	var found []string

	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		imgURL, _ := s.Attr("src")

		if isDeniedImage(imgURL) {
			return
		}
		if !isProductishImage(imgURL) {
			return
		}

		imgURL = normalizeMediaCDN(imgURL)

		resolved := resolveImageURL(imgURL, base)
		if resolved == "" || !imageSuffixPattern.MatchString(resolved) {
			return
		}
		found = append(found, resolved)
	})

	return found
}

// mineImgDataSrc extracts lazy-load <img data-src> candidates. The accept
// rule is relaxed relative to src: any non-denied image-suffixed URL
// qualifies, since data-src on product pages almost always is the product.
func mineImgDataSrc(doc *goquery.Document, _ string, base *url.URL) []string {
	var found []string

	doc.Find("img[data-src]").Each(func(_ int, s *goquery.Selection) {
		imgURL, _ := s.Attr("data-src")

		if strings.Contains(imgURL, "sprite") ||
			strings.Contains(imgURL, "nav-") ||
			strings.Contains(imgURL, "placeholder") {
			return
		}
		if !imageSuffixPattern.MatchString(imgURL) {
			return
		}

		imgURL = normalizeMediaCDN(imgURL)

		if resolved := resolveImageURL(imgURL, base); resolved != "" {
			found = append(found, resolved)
		}
	})

	return found
}

// mineImgSrcset extracts the last (largest) srcset candidate.
func mineImgSrcset(doc *goquery.Document, _ string, base *url.URL) []string {
	var found []string

	doc.Find("img[srcset]").Each(func(_ int, s *goquery.Selection) {
		srcset, _ := s.Attr("srcset")

		entries := strings.Split(srcset, ",")
		last := strings.TrimSpace(entries[len(entries)-1])
		largest := strings.SplitN(last, " ", 2)[0]

		if largest == "" ||
			strings.Contains(largest, "sprite") ||
			strings.Contains(largest, "placeholder") ||
			!imageSuffixPattern.MatchString(largest) {
			return
		}

		if resolved := resolveImageURL(largest, base); resolved != "" {
			found = append(found, resolved)
		}
	})

	return found
}

// isDeniedImage applies the deny filters shared by the <img src> strategy.
func isDeniedImage(imgURL string) bool {
	if len(imgURL) < 20 {
		return true
	}
	if vectorOrGifPattern.MatchString(imgURL) {
		return true
	}
	for _, deny := range imgDenySubstrings {
		if strings.Contains(imgURL, deny) {
			return true
		}
	}
	return false
}

// isProductishImage applies the allow filters for <img src> candidates.
func isProductishImage(imgURL string) bool {
	for _, allow := range imgAllowSubstrings {
		if strings.Contains(imgURL, allow) {
			return true
		}
	}
	return imagesPathPattern.MatchString(imgURL)
}

// normalizeMediaCDN strips resize-suffix tokens from known media CDN URLs
// so the candidate points at the full-resolution image.
func normalizeMediaCDN(imgURL string) string {
	if !strings.Contains(imgURL, mediaCDNPath) {
		return imgURL
	}
	for _, pattern := range mediaCDNResizePatterns {
		imgURL = pattern.ReplaceAllString(imgURL, ".")
	}
	return imgURL
}

// resolveImageURL makes a candidate absolute against the page URL.
func resolveImageURL(imgURL string, base *url.URL) string {
	if strings.HasPrefix(imgURL, "http://") || strings.HasPrefix(imgURL, "https://") {
		return imgURL
	}
	if base == nil {
		return ""
	}
	ref, err := url.Parse(imgURL)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
