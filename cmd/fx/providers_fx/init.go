package providers_fx

import (
	"net/http"
	"travelplanner/internal/catalog"
	"travelplanner/internal/config"
	"travelplanner/internal/providers"
	"travelplanner/internal/services"
	mem "travelplanner/pkg/memcache"
	"travelplanner/pkg/utils"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Provide(
	providers.NewHTTPClient,
	catalog.Load,
	provideGeocoder,
	provideProviders,
)

func provideGeocoder(client *http.Client, cfg config.Config, cache mem.CoordinateStore) *providers.GoogleGeocoder {
	return providers.NewGoogleGeocoder(client, cfg.GooglePlacesAPIKey, cache)
}

func provideWebSearch(client *http.Client, cfg config.Config) services.WebSearchProvider {
	if cfg.SerperAPIKey != "" {
		return providers.NewSerperClient(client, cfg.SerperAPIKey)
	}
	return providers.NewGoogleHTMLSearch(client)
}

type providerParams struct {
	fx.In

	Client    *http.Client
	Config    config.Config
	Geocoder  *providers.GoogleGeocoder
	Catalog   *catalog.Catalog
	Describer utils.DescriberInterface
	Logger    *zap.Logger
}

func provideProviders(p providerParams) services.Providers {
	return services.Providers{
		Places:    providers.NewGooglePlacesClient(p.Client, p.Config.GooglePlacesAPIKey),
		Reviews:   providers.NewTripAdvisorClient(p.Client, p.Config.TripAdvisorAPIKey, p.Geocoder),
		Weather:   providers.NewOpenWeatherClient(p.Client, p.Config.WeatherAPIKey),
		Geocoder:  p.Geocoder,
		WebSearch: provideWebSearch(p.Client, p.Config),
		Scraper:   providers.NewPageScraper(p.Client),
		TimeZones: providers.NewTimeZoneFinder(p.Logger),
		Describer: p.Describer,
		Catalog:   p.Catalog,
	}
}
