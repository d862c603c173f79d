package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"travelplanner/internal/models/trip_models"
	mem "travelplanner/pkg/memcache"
	"travelplanner/pkg/utils"
)

// GoogleGeocoder resolves destination names to coordinates. Results are cached.
type GoogleGeocoder struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
	Cache   mem.CoordinateStore
}

func NewGoogleGeocoder(client *http.Client, apiKey string, cache mem.CoordinateStore) *GoogleGeocoder {
	return &GoogleGeocoder{
		HTTP:    client,
		APIKey:  apiKey,
		BaseURL: googleMapsBaseURL,
		Cache:   cache,
	}
}

func (g *GoogleGeocoder) Resolve(ctx context.Context, destination string) (*trip_models.Coordinates, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, fmt.Errorf("geocode: %w", utils.ErrInvalidInput)
	}
	if g.Cache != nil {
		if coords, ok := g.Cache.Get(destination); ok {
			return &coords, nil
		}
	}
	if g.APIKey == "" {
		return nil, fmt.Errorf("geocode: %w", utils.ErrMissingCredential)
	}

	params := url.Values{}
	params.Set("address", destination)
	params.Set("key", g.APIKey)

	var payload struct {
		googleStatus
		Results []struct {
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := getJSON(ctx, g.HTTP, g.BaseURL+"/geocode/json", params, &payload); err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}
	if err := payload.err(); err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}
	if len(payload.Results) == 0 {
		return nil, fmt.Errorf("geocode %q: %w", destination, utils.ErrNoDataFound)
	}

	loc := payload.Results[0].Geometry.Location
	coords := trip_models.Coordinates{Lat: loc.Lat, Lon: loc.Lng}
	if g.Cache != nil {
		g.Cache.Set(destination, coords, mem.DefaultCoordinateTTL)
	}
	return &coords, nil
}
