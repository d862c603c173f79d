package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"travelplanner/internal/models/trip_models"
	"travelplanner/pkg/utils"

	"github.com/samber/lo"
)

const tripAdvisorBaseURL = "https://api.content.tripadvisor.com/api/v1"

type locator interface {
	Resolve(ctx context.Context, destination string) (*trip_models.Coordinates, error)
}

// TripAdvisorClient finds attractions with the TripAdvisor content API.
type TripAdvisorClient struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
	// Geocoder biases the search around the destination when set.
	Geocoder locator
}

type tripAdvisorLocation struct {
	Name       string   `json:"name"`
	Rating     *float64 `json:"rating"`
	AddressObj struct {
		AddressString string `json:"address_string"`
	} `json:"address_obj"`
}

func NewTripAdvisorClient(client *http.Client, apiKey string, geocoder locator) *TripAdvisorClient {
	return &TripAdvisorClient{
		HTTP:     client,
		APIKey:   apiKey,
		BaseURL:  tripAdvisorBaseURL,
		Geocoder: geocoder,
	}
}

func (c *TripAdvisorClient) Search(ctx context.Context, destination string, interests []string) ([]trip_models.RecommendationItem, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("tripadvisor: %w", utils.ErrMissingCredential)
	}

	params := url.Values{}
	params.Set("key", c.APIKey)
	params.Set("searchQuery", destination)
	params.Set("category", "attractions")
	if c.Geocoder != nil {
		if coords, err := c.Geocoder.Resolve(ctx, destination); err == nil && coords != nil {
			params.Set("latLong", fmt.Sprintf("%g,%g", coords.Lat, coords.Lon))
		}
	}

	var payload struct {
		Data []tripAdvisorLocation `json:"data"`
	}
	if err := getJSON(ctx, c.HTTP, c.BaseURL+"/location/search", params, &payload); err != nil {
		return nil, fmt.Errorf("tripadvisor: %w", err)
	}

	results := payload.Data
	if len(interests) > 0 {
		lowered := lo.Map(interests, func(s string, _ int) string { return strings.ToLower(s) })
		results = lo.Filter(results, func(r tripAdvisorLocation, _ int) bool {
			name := strings.ToLower(r.Name)
			return lo.SomeBy(lowered, func(i string) bool { return strings.Contains(name, i) })
		})
	}

	items := make([]trip_models.RecommendationItem, 0, min(placesLimit, len(results)))
	for _, r := range results[:min(placesLimit, len(results))] {
		items = append(items, trip_models.RecommendationItem{
			Name:     r.Name,
			Type:     "attraction",
			Rating:   r.Rating,
			Location: r.AddressObj.AddressString,
			Source:   "TripAdvisor",
		})
	}
	return items, nil
}
