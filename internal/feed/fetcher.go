// Package feed retrieves raw trajectory feed text over HTTP.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultURL is the NASA public ISS OEM ephemeris.
const DefaultURL = "https://nasa-public-data.s3.amazonaws.com/iss-coords/current/ISS_OEM/ISS.OEM_J2K_EPH.txt"

const defaultTimeout = 30 * time.Second

// Fetcher retrieves the trajectory feed document. It performs no retries;
// callers decide whether and when to try again.
type Fetcher struct {
	url    string
	client *http.Client
}

// NewFetcher creates a fetcher for the given feed URL. An empty URL selects
// the default NASA feed; a zero timeout selects the default.
func NewFetcher(url string, timeout time.Duration) *Fetcher {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the raw feed text.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve trajectory feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d from trajectory feed", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read trajectory feed body: %w", err)
	}

	return string(body), nil
}
