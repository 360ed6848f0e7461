package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/wishbee-dev/wishbee-ai/internal/domain"
	"golang.org/x/time/rate"
)

// maxResponseBytes caps how much of the generation response body is read.
const maxResponseBytes = 1 << 20 // 1 MiB

// Client handles communication with the text generation service over its
// chat-completions HTTP API. A single request is made per call: the
// extraction flow treats any failure as final and falls back immediately,
// so there is no retry loop here.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new generation service client
func NewClient(apiKey, baseURL, model string) *Client {
	// Keep well under typical provider limits; burst absorbs the two calls
	// an extraction + comparison pair makes back to back.
	limiter := rate.NewLimiter(rate.Limit(2), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		model:       model,
		rateLimiter: limiter,
	}
}

// SetDebug toggles verbose request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Client) debugLog(format string, args ...interface{}) {
	if c.debug {
		log.Printf("[LLM] "+format, args...)
	}
}

// chatRequest is the chat-completions request payload
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the chat-completions response payload
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends a single prompt to the generation service and returns the
// raw model output. The prompt text is a correctness-relevant contract:
// callers request a specific JSON shape and parse exactly that shape back.
func (c *Client) Complete(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/chat/completions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.debugLog("POST %s model=%s prompt=%d chars", reqURL, c.model, len(prompt))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := readLimitedBody(resp.Body, maxResponseBytes)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", domain.ErrGenerationFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[LLM] API error - Status: %d, Body: %s", resp.StatusCode, truncateForLog(respBody))
		return "", fmt.Errorf("%w: status %d", domain.ErrGenerationFailure, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrGenerationFailure, parsed.Error.Message)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", domain.ErrGenerationFailure)
	}

	content := parsed.Choices[0].Message.Content
	c.debugLog("response: %d chars", len(content))

	return content, nil
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}

// truncateForLog keeps error-path logging bounded
func truncateForLog(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
