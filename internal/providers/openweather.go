package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"travelplanner/internal/models/trip_models"
	"travelplanner/pkg/utils"
)

const openWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherClient reads metric forecasts and current conditions from OpenWeatherMap.
type OpenWeatherClient struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
}

func NewOpenWeatherClient(client *http.Client, apiKey string) *OpenWeatherClient {
	return &OpenWeatherClient{
		HTTP:    client,
		APIKey:  apiKey,
		BaseURL: openWeatherBaseURL,
	}
}

type owmReading struct {
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

func (r owmReading) toWeather() *trip_models.Weather {
	w := &trip_models.Weather{Temp: r.Main.Temp}
	if len(r.Weather) > 0 {
		w.Conditions = r.Weather[0].Description
		w.Icon = r.Weather[0].Icon
	}
	return w
}

func (c *OpenWeatherClient) params(coords trip_models.Coordinates) (url.Values, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("openweather: %w", utils.ErrMissingCredential)
	}
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	params.Set("appid", c.APIKey)
	params.Set("units", "metric")
	return params, nil
}

// ForecastForDate returns the first forecast slot on the given date, or nil when the
// forecast window does not reach it.
func (c *OpenWeatherClient) ForecastForDate(ctx context.Context, coords trip_models.Coordinates, date time.Time) (*trip_models.Weather, error) {
	params, err := c.params(coords)
	if err != nil {
		return nil, err
	}

	var payload struct {
		List []owmReading `json:"list"`
	}
	if err := getJSON(ctx, c.HTTP, c.BaseURL+"/forecast", params, &payload); err != nil {
		return nil, fmt.Errorf("openweather forecast: %w", err)
	}

	day := date.Format(time.DateOnly)
	for _, reading := range payload.List {
		if strings.Contains(reading.DtTxt, day) {
			return reading.toWeather(), nil
		}
	}
	return nil, nil
}

func (c *OpenWeatherClient) Current(ctx context.Context, coords trip_models.Coordinates) (*trip_models.Weather, error) {
	params, err := c.params(coords)
	if err != nil {
		return nil, err
	}

	var reading owmReading
	if err := getJSON(ctx, c.HTTP, c.BaseURL+"/weather", params, &reading); err != nil {
		return nil, fmt.Errorf("openweather current: %w", err)
	}
	return reading.toWeather(), nil
}
