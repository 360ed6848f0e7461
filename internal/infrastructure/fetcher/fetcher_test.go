package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wishbee-dev/wishbee-ai/internal/domain"
)

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>product page</body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(5 * time.Second)

	html, err := f.Fetch(context.Background(), server.URL+"/products/lamp")

	require.NoError(t, err)
	assert.Contains(t, html, "product page")
}

func TestFetch_BrowserHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Chrome")
		assert.NotContains(t, r.Header.Get("User-Agent"), "Go-http-client")
		assert.Contains(t, r.Header.Get("Accept"), "text/html")
		assert.Equal(t, "en-US,en;q=0.9", r.Header.Get("Accept-Language"))
		assert.Equal(t, "document", r.Header.Get("Sec-Fetch-Dest"))
		assert.True(t, strings.HasPrefix(r.Header.Get("Referer"), "http://"))

		w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := NewFetcher(5 * time.Second)

	_, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
}

func TestFetch_Forbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	f := NewFetcher(5 * time.Second)

	_, err := f.Fetch(context.Background(), server.URL)
	assert.ErrorIs(t, err, domain.ErrPageUnavailable)
}

func TestFetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewFetcher(5 * time.Second)

	_, err := f.Fetch(context.Background(), server.URL)
	assert.ErrorIs(t, err, domain.ErrPageUnavailable)
}

func TestFetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(5 * time.Second)

	_, err := f.Fetch(context.Background(), server.URL)
	assert.ErrorIs(t, err, domain.ErrPageUnavailable)
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	f := NewFetcher(100 * time.Millisecond)

	start := time.Now()
	_, err := f.Fetch(context.Background(), server.URL)

	assert.ErrorIs(t, err, domain.ErrPageUnavailable)
	assert.Less(t, time.Since(start), 2*time.Second, "fetch did not abort at the deadline")
}

func TestFetch_InvalidURL(t *testing.T) {
	f := NewFetcher(5 * time.Second)

	tests := []string{
		"",
		"not a url",
		"/relative/path",
		"://missing-scheme",
	}

	for _, pageURL := range tests {
		_, err := f.Fetch(context.Background(), pageURL)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest, "url: %q", pageURL)
	}
}

func TestFetch_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	f := NewFetcher(2 * time.Second)

	_, err := f.Fetch(context.Background(), server.URL)
	assert.ErrorIs(t, err, domain.ErrPageUnavailable)
}

func TestFetch_CapsBodySize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chunk := make([]byte, 1<<20)
		for i := 0; i < 7; i++ {
			w.Write(chunk)
		}
	}))
	defer server.Close()

	f := NewFetcher(10 * time.Second)

	html, err := f.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Len(t, html, maxPageBytes)
}
