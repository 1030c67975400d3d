package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNoResult is returned when the geocoding service responds normally
// but has no match for the query.
var ErrNoResult = errors.New("nominatim: no result for query")

// Geocoder resolves a free-text place query to a single best-match
// coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat, lon float64, err error)
}

// NominatimClient queries the OSM Nominatim search API.
type NominatimClient struct {
	endpoint string
	client   *http.Client
}

// nominatimResult mirrors the relevant parts of the OSM search payload.
// Nominatim returns coordinates as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NewNominatimClient creates a client against the given endpoint with a
// per-request timeout.
func NewNominatimClient(endpoint string, timeout time.Duration) *NominatimClient {
	return &NominatimClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Geocode performs a single best-match lookup.
func (n *NominatimClient) Geocode(ctx context.Context, query string) (float64, float64, error) {
	u := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", n.endpoint, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("nominatim: build request: %w", err)
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", "merida-market-watch/1.0")

	resp, err := n.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("nominatim: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("nominatim: unexpected status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("nominatim: decode response: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, ErrNoResult
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("nominatim: parse lat %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("nominatim: parse lon %q: %w", results[0].Lon, err)
	}
	return lat, lon, nil
}
