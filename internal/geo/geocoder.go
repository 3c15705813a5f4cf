package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/raf-aleaqarih/raf24-api/internal/config"
)

// httpGeocoder calls the configured geocoding API (Google Maps geocode
// endpoint shape) to resolve place names.
type httpGeocoder struct {
	cfg        *config.Config
	httpClient *http.Client
}

// NewGeocoder creates a Geocoder backed by the configured geocoding API.
// Returns nil when no API key is configured; callers treat nil as "fallback
// disabled".
func NewGeocoder(cfg *config.Config) Geocoder {
	if cfg.GeocodingAPIKey == "" {
		return nil
	}
	return &httpGeocoder{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (g *httpGeocoder) Geocode(ctx context.Context, query string) (*Coordinates, error) {
	u, err := url.Parse(g.cfg.GeocodingURL)
	if err != nil {
		return nil, fmt.Errorf("invalid geocoding URL: %w", err)
	}
	q := u.Query()
	q.Set("address", query)
	q.Set("key", g.cfg.GeocodingAPIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding API returned status %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if body.Status != "OK" || len(body.Results) == 0 {
		return nil, ErrNoCoordinates
	}

	loc := body.Results[0].Geometry.Location
	return &Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}
