// Package avatar retrieves avatar images from user-supplied URLs.
package avatar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher downloads avatar bytes with a hard size and time bound. URLs come
// from untrusted form input, so both limits are mandatory.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewFetcher creates a fetcher capped at maxBytes per download and timeout
// per request. The underlying client is safe for concurrent use.
func NewFetcher(timeout time.Duration, maxBytes int64) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Fetch performs a single GET and returns the full response body. A non-2xx
// status, a body exceeding the byte cap, a network error, or a timeout all
// fail the fetch; there are no retries.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid avatar URL: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("avatar fetch failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("avatar fetch returned status %d", resp.StatusCode)
	}

	// Read one byte past the cap to distinguish "exactly at the limit" from
	// "over the limit" without trusting Content-Length.
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("avatar fetch failed: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("avatar exceeds %d byte limit", f.maxBytes)
	}

	return data, nil
}
