package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"travelplanner/internal/models/trip_models"
	"travelplanner/pkg/utils"
)

const (
	googleMapsBaseURL = "https://maps.googleapis.com/maps/api"
	placesLimit       = 5
)

// GooglePlacesClient searches places with the Places text search API.
type GooglePlacesClient struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
}

func NewGooglePlacesClient(client *http.Client, apiKey string) *GooglePlacesClient {
	return &GooglePlacesClient{
		HTTP:    client,
		APIKey:  apiKey,
		BaseURL: googleMapsBaseURL,
	}
}

type googleStatus struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// err reports statuses other than OK and ZERO_RESULTS. Google answers 200 for those too.
func (s googleStatus) err() error {
	switch s.Status {
	case "", "OK", "ZERO_RESULTS":
		return nil
	}
	return fmt.Errorf("%w: google status %s %s", utils.ErrProviderRequest, s.Status, s.ErrorMessage)
}

func (c *GooglePlacesClient) Search(ctx context.Context, destination, query string, priceBand int) ([]trip_models.RecommendationItem, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("google places: %w", utils.ErrMissingCredential)
	}

	params := url.Values{}
	params.Set("query", fmt.Sprintf("%s in %s", query, destination))
	params.Set("key", c.APIKey)
	if priceBand > 0 {
		params.Set("maxprice", strconv.Itoa(priceBand))
	}

	var payload struct {
		googleStatus
		Results []struct {
			Name             string   `json:"name"`
			Rating           *float64 `json:"rating"`
			PriceLevel       *int     `json:"price_level"`
			FormattedAddress string   `json:"formatted_address"`
		} `json:"results"`
	}
	if err := getJSON(ctx, c.HTTP, c.BaseURL+"/place/textsearch/json", params, &payload); err != nil {
		return nil, fmt.Errorf("google places: %w", err)
	}
	if err := payload.err(); err != nil {
		return nil, fmt.Errorf("google places: %w", err)
	}

	items := make([]trip_models.RecommendationItem, 0, min(placesLimit, len(payload.Results)))
	for _, place := range payload.Results[:min(placesLimit, len(payload.Results))] {
		items = append(items, trip_models.RecommendationItem{
			Name:       place.Name,
			Type:       query,
			Rating:     place.Rating,
			PriceLevel: place.PriceLevel,
			Location:   place.FormattedAddress,
			Source:     "Google Places",
		})
	}
	return items, nil
}
