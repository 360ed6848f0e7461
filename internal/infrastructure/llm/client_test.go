package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wishbee-dev/wishbee-ai/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "https://api.example.com/v1", "gpt-4o-mini")

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://api.example.com/v1", client.baseURL)
	assert.Equal(t, "gpt-4o-mini", client.model)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)
}

func TestSetDebug(t *testing.T) {
	client := NewClient("test-api-key", "https://api.example.com/v1", "gpt-4o-mini")

	assert.False(t, client.debug)

	client.SetDebug(true)
	assert.True(t, client.debug)

	client.SetDebug(false)
	assert.False(t, client.debug)
}

func TestComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "extract this product", req.Messages[0].Content)
		assert.Equal(t, 2000, req.MaxTokens)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"productName\":\"Lamp\"}"}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gpt-4o-mini")

	result, err := client.Complete(context.Background(), "extract this product", domain.GenerateOptions{MaxTokens: 2000})

	require.NoError(t, err)
	assert.Equal(t, `{"productName":"Lamp"}`, result)
}

func TestComplete_ServerError(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gpt-4o-mini")

	result, err := client.Complete(context.Background(), "prompt", domain.GenerateOptions{})

	assert.Empty(t, result)
	assert.ErrorIs(t, err, domain.ErrGenerationFailure)
	assert.Equal(t, 1, attempts) // single attempt, no retry
}

func TestComplete_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gpt-4o-mini")

	_, err := client.Complete(context.Background(), "prompt", domain.GenerateOptions{})

	assert.ErrorIs(t, err, domain.ErrGenerationFailure)
}

func TestComplete_APIErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":{"message":"insufficient quota","type":"insufficient_quota"}}`))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gpt-4o-mini")

	_, err := client.Complete(context.Background(), "prompt", domain.GenerateOptions{})

	assert.ErrorIs(t, err, domain.ErrGenerationFailure)
	assert.Contains(t, err.Error(), "insufficient quota")
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gpt-4o-mini")

	_, err := client.Complete(context.Background(), "prompt", domain.GenerateOptions{})

	assert.ErrorIs(t, err, domain.ErrGenerationFailure)
}

func TestComplete_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("not valid json"))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gpt-4o-mini")

	_, err := client.Complete(context.Background(), "prompt", domain.GenerateOptions{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestComplete_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("test-api-key", "https://api.example.com/v1", "gpt-4o-mini")

	_, err := client.Complete(ctx, "prompt", domain.GenerateOptions{})

	assert.Error(t, err)
}

func TestDebugLog(t *testing.T) {
	client := NewClient("test-api-key", "https://api.example.com/v1", "gpt-4o-mini")

	// Should not panic in either state
	client.debug = false
	client.debugLog("test message %s", "arg")

	client.debug = true
	client.debugLog("test message %s", "arg")
}

func TestReadLimitedBody(t *testing.T) {
	t.Run("reads within limit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("short content"))
		}))
		defer server.Close()

		resp, err := http.Get(server.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := readLimitedBody(resp.Body, 1000)
		require.NoError(t, err)
		assert.Equal(t, "short content", string(body))
	})

	t.Run("truncates beyond limit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for i := 0; i < 100; i++ {
				w.Write([]byte("0123456789"))
			}
		}))
		defer server.Close()

		resp, err := http.Get(server.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := readLimitedBody(resp.Body, 100)
		require.NoError(t, err)
		assert.Len(t, body, 100)
	})
}

func TestTruncateForLog(t *testing.T) {
	short := []byte("short body")
	assert.Equal(t, "short body", truncateForLog(short))

	long := make([]byte, 600)
	for i := range long {
		long[i] = 'a'
	}
	truncated := truncateForLog(long)
	assert.Len(t, truncated, 512+len("..."))
}
