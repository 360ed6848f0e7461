package fetcher

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/wishbee-dev/wishbee-ai/internal/domain"
)

// maxPageBytes caps how much of a product page is read. Pages beyond this
// carry no extra signal for extraction.
const maxPageBytes = 5 << 20 // 5 MiB

// Fetcher retrieves product page HTML within a fixed wall-clock budget.
// Any failure (network error, timeout, 403, non-2xx) resolves to
// domain.ErrPageUnavailable and the caller falls back to URL-only
// extraction. A single attempt only; the timed-out request is aborted via
// context deadline rather than left running.
type Fetcher struct {
	httpClient *http.Client
	timeout    time.Duration
}

// NewFetcher creates a page fetcher with the given per-request budget
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			// The context deadline governs the budget; this is a backstop.
			Timeout: timeout + time.Second,
		},
		timeout: timeout,
	}
}

// Fetch performs a single GET of pageURL with browser-like headers.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%w: invalid url", domain.ErrInvalidRequest)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	setBrowserHeaders(req, parsed)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		log.Printf("[Fetch] %s unavailable: %v", parsed.Host, err)
		return "", fmt.Errorf("%w: %v", domain.ErrPageUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		log.Printf("[Fetch] %s blocks scraping (403)", parsed.Host)
		return "", fmt.Errorf("%w: status 403", domain.ErrPageUnavailable)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[Fetch] %s returned %d", parsed.Host, resp.StatusCode)
		return "", fmt.Errorf("%w: status %d", domain.ErrPageUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", domain.ErrPageUnavailable, err)
	}

	return string(body), nil
}

// setBrowserHeaders applies the fixed browser-like header set. Sites that
// sniff default Go user agents refuse the request outright.
func setBrowserHeaders(req *http.Request, parsed *url.URL) {
	req.Header.Set("User-Agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36")
	req.Header.Set("Accept",
		"text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")
	req.Header.Set("Cache-Control", "max-age=0")
	req.Header.Set("Referer", parsed.Scheme+"://"+parsed.Host)
}
