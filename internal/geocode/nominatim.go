// Package geocode provides reverse geocoding of latitude/longitude pairs via
// the Nominatim API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "isstracker"
	defaultTimeout   = 10 * time.Second
)

// Nominatim is a reverse-geocoding client. Lookups use zoom level 1
// (country granularity) and English names, matching what makes sense for a
// point hundreds of kilometers above the surface.
type Nominatim struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewNominatim creates a client. Empty or zero arguments select defaults.
func NewNominatim(baseURL, userAgent string, timeout time.Duration) *Nominatim {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Nominatim{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// reverseResponse is the subset of the Nominatim jsonv2 reverse payload we
// care about. A miss comes back as {"error": "Unable to geocode"}.
type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Reverse resolves a coordinate pair to a place name. A point with no
// addressable location (open ocean, polar ice) returns an empty name and a
// nil error.
func (n *Nominatim) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("format", "jsonv2")
	query.Set("zoom", "1")
	query.Set("accept-language", "en")

	reqURL := fmt.Sprintf("%s/reverse?%s", n.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d from geocoder", resp.StatusCode)
	}

	var decoded reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode geocoder response: %w", err)
	}

	if decoded.Error != "" {
		// Nominatim reports unaddressable coordinates as an in-band error.
		return "", nil
	}
	return decoded.DisplayName, nil
}
