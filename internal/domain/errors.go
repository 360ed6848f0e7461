package domain

import "errors"

var (
	// ErrPageUnavailable is returned when a product page cannot be fetched
	// (network error, timeout, 403, or any non-2xx status). Recovered
	// locally by falling back to URL-only extraction.
	ErrPageUnavailable = errors.New("product page unavailable")

	// ErrGenerationFailure is returned when the generation service request fails
	ErrGenerationFailure = errors.New("generation service request failed")

	// ErrMalformedResponse is returned when the generation service returns
	// output that is not valid JSON after fence stripping
	ErrMalformedResponse = errors.New("malformed generation response")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrNoImageGenerated is returned when the image service responds
	// without any image
	ErrNoImageGenerated = errors.New("no image generated")
)
