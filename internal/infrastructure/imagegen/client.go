package imagegen

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
)

// maxImageBytes caps downloaded image size for the inline-base64 endpoint.
const maxImageBytes = 10 << 20 // 10 MiB

// Client handles communication with the image generation service. Models
// are addressed by path (e.g. "fal-ai/flux/schnell") on the same host.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewClient creates a new image generation client
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

// generateRequest is the image generation request payload
type generateRequest struct {
	Prompt              string  `json:"prompt"`
	ImageSize           string  `json:"image_size"`
	NumInferenceSteps   int     `json:"num_inference_steps"`
	GuidanceScale       float64 `json:"guidance_scale,omitempty"`
	NumImages           int     `json:"num_images"`
	EnableSafetyChecker bool    `json:"enable_safety_checker"`
}

// generateResponse is the image generation response payload
type generateResponse struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

// Generate requests one image and returns its hosted URL.
func (c *Client) Generate(ctx context.Context, prompt string, params domain.ImageParams) (string, error) {
	payload := generateRequest{
		Prompt:              prompt,
		ImageSize:           params.Size,
		NumInferenceSteps:   params.InferenceSteps,
		GuidanceScale:       params.GuidanceScale,
		NumImages:           1,
		EnableSafetyChecker: true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s", c.baseURL, params.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("[Image] API error - Status: %d, Body: %s", resp.StatusCode, string(respBody))
		return "", fmt.Errorf("%w: status %d", domain.ErrGenerationFailure, resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(parsed.Images) == 0 || parsed.Images[0].URL == "" {
		return "", domain.ErrNoImageGenerated
	}

	return parsed.Images[0].URL, nil
}

// Download fetches the generated image bytes so they can be inlined in a
// response instead of handing the caller a short-lived hosted URL.
func (c *Client) Download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: image download status %d", domain.ErrGenerationFailure, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	return data, nil
}
