package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const geocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Geocoder resolves street addresses to coordinates with the Google Geocoding
// API. It is used for places whose details omit a geometry.
type Geocoder struct {
	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
	endpoint string
}

// NewGeocoder creates a Geocoding API client.
func NewGeocoder(apiKey string) *Geocoder {
	return &Geocoder{
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 10 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(10), 5),
		endpoint: geocodeURL,
	}
}

// Geocode resolves an address to a coordinate pair. A lookup with no matching
// location returns ErrNoResults.
func (g *Geocoder) Geocode(ctx context.Context, address string) (LatLng, error) {
	if strings.TrimSpace(address) == "" {
		return LatLng{}, ErrNoResults
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return LatLng{}, err
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)

	rq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return LatLng{}, err
	}

	reply, err := g.client.Do(rq)
	if err != nil {
		return LatLng{}, fmt.Errorf("geocoding request failed (%v)", err)
	}

	defer reply.Body.Close()

	if reply.StatusCode != http.StatusOK {
		return LatLng{}, fmt.Errorf("geocoding request failed with HTTP status %v", reply.StatusCode)
	}

	response := struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
		Results      []struct {
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}{}

	if err := json.NewDecoder(reply.Body).Decode(&response); err != nil {
		return LatLng{}, fmt.Errorf("invalid geocoding response (%v)", err)
	}

	switch response.Status {
	case "OK":
		if len(response.Results) == 0 {
			return LatLng{}, ErrNoResults
		}

		location := response.Results[0].Geometry.Location

		return LatLng{Lat: location.Lat, Lng: location.Lng}, nil

	case "ZERO_RESULTS":
		return LatLng{}, ErrNoResults

	default:
		return LatLng{}, fmt.Errorf("geocoding failed: %w", statusError(response.Status, response.ErrorMessage))
	}
}
