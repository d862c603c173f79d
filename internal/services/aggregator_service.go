package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"travelplanner/internal/catalog"
	"travelplanner/internal/models/trip_models"
	"travelplanner/pkg/utils"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	sourceWeb = "web"

	webSearchResults   = 3
	webRecommendations = 5
	mustSeeLimit       = 5
	defaultDescription = "A wonderful travel destination with many attractions"
)

type PlaceProvider interface {
	Search(ctx context.Context, destination, query string, priceBand int) ([]trip_models.RecommendationItem, error)
}

type ReviewProvider interface {
	Search(ctx context.Context, destination string, interests []string) ([]trip_models.RecommendationItem, error)
}

type WeatherProvider interface {
	ForecastForDate(ctx context.Context, coords trip_models.Coordinates, date time.Time) (*trip_models.Weather, error)
	Current(ctx context.Context, coords trip_models.Coordinates) (*trip_models.Weather, error)
}

type GeocodeProvider interface {
	Resolve(ctx context.Context, destination string) (*trip_models.Coordinates, error)
}

type WebSearchProvider interface {
	Search(ctx context.Context, query string, n int) ([]trip_models.SearchResult, error)
}

type ContentScraper interface {
	Scrape(ctx context.Context, url string) (*trip_models.ScrapedPage, error)
}

type Describer interface {
	Describe(ctx context.Context, destination string) (string, error)
}

type TimeZoneResolver interface {
	TimeZone(coords trip_models.Coordinates) string
}

type DestinationCatalog interface {
	Lookup(name string) (catalog.Entry, bool)
}

// Providers groups the collaborators of the aggregator. Any of them may be nil.
type Providers struct {
	Places    PlaceProvider
	Reviews   ReviewProvider
	Weather   WeatherProvider
	Geocoder  GeocodeProvider
	WebSearch WebSearchProvider
	Scraper   ContentScraper
	Describer Describer
	TimeZones TimeZoneResolver
	Catalog   DestinationCatalog
}

// FetchResult is the outcome of one link of a fallback chain.
type FetchResult struct {
	Items  []trip_models.RecommendationItem
	Source string
	Err    error
}

func (r FetchResult) OK() bool {
	return r.Err == nil && len(r.Items) > 0
}

type chainLink struct {
	source string
	fetch  func(ctx context.Context) ([]trip_models.RecommendationItem, error)
}

// AggregateResult is everything gathered for one itinerary.
type AggregateResult struct {
	Info          trip_models.DestinationInfo
	Attractions   []trip_models.RecommendationItem
	Coordinates   *trip_models.Coordinates
	TimeZone      string
	UsedWebSearch bool
	// Forecast is keyed by date in 2006-01-02 form.
	Forecast map[string]*trip_models.Weather
}

func (r *AggregateResult) WeatherOn(date time.Time) *trip_models.Weather {
	if r == nil || r.Forecast == nil {
		return nil
	}
	return r.Forecast[date.Format(time.DateOnly)]
}

type AggregatorServiceInterface interface {
	// Aggregate gathers recommendations, coordinates and weather for a trip of the given
	// length starting at start.
	Aggregate(ctx context.Context, profile *trip_models.TravelProfile, start time.Time, days int) *AggregateResult
}

type AggregatorService struct {
	providers Providers
	logger    *zap.Logger
}

func NewAggregatorService(providers Providers, logger *zap.Logger) AggregatorServiceInterface {
	return &AggregatorService{
		providers: providers,
		logger:    logger,
	}
}

func (a *AggregatorService) Aggregate(ctx context.Context, profile *trip_models.TravelProfile, start time.Time, days int) *AggregateResult {
	destination := strings.TrimSpace(profile.Destination)
	interests := profile.InterestList()
	band := PriceBand(AmountFromBudget(profile.Budget))

	res := &AggregateResult{
		Info: trip_models.DestinationInfo{
			MustSee:       []string{},
			Activities:    []trip_models.RecommendationItem{},
			Dining:        []trip_models.RecommendationItem{},
			Accommodation: []trip_models.RecommendationItem{},
		},
	}

	entry, known := a.catalogEntry(destination)
	if known {
		res.Info.Description = entry.Description
		res.Info.MustSee = append(res.Info.MustSee, entry.MustSee...)
		res.Info.Transport = entry.Transport
	}

	// attractions
	attractionLabel := strings.Join(interests, ", ")
	if attractionLabel == "" {
		attractionLabel = "attractions"
	}
	attractions := a.collect(ctx, res, trip_models.CategoryAttraction,
		a.placeLink(destination, "tourist attractions", 0, trip_models.CategoryAttraction),
		a.reviewLink(destination, interests),
		a.webLink(destination, attractionLabel, trip_models.CategoryAttraction),
	)
	res.Attractions = attractions
	if len(attractions) > 0 {
		res.Info.MustSee = lo.Map(attractions[:min(mustSeeLimit, len(attractions))],
			func(item trip_models.RecommendationItem, _ int) string { return item.Name })
	}

	// activities
	activityLabels := interests
	if len(activityLabels) == 0 {
		activityLabels = []string{"things to do"}
	}
	for _, label := range activityLabels {
		items := a.collect(ctx, res, trip_models.CategoryActivity,
			a.placeLink(destination, label, 0, trip_models.CategoryActivity),
			a.webLink(destination, label, trip_models.CategoryActivity),
		)
		for i := range items {
			items[i].Tags = timeOfDayTags(label)
		}
		res.Info.Activities = append(res.Info.Activities, items...)
	}

	// dining
	dining := a.collect(ctx, res, trip_models.CategoryDining,
		a.placeLink(destination, "restaurants", band, trip_models.CategoryDining),
		a.webLink(destination, "restaurants", trip_models.CategoryDining),
	)
	for i := range dining {
		if label, ok := firstMatch(dietaryRules, strings.ToLower(dining[i].Name+" "+dining[i].Description)); ok {
			dining[i].Dietary = append(dining[i].Dietary, label)
		}
	}
	res.Info.Dining = append(res.Info.Dining, dining...)

	// lodging
	lodgingQuery := strings.ToLower(strings.TrimSpace(profile.AccommodationPreference))
	if lodgingQuery == "" {
		lodgingQuery = "hotel"
	}
	res.Info.Accommodation = append(res.Info.Accommodation, a.collect(ctx, res, trip_models.CategoryLodging,
		a.placeLink(destination, lodgingQuery, band, trip_models.CategoryLodging),
		a.webLink(destination, lodgingQuery, trip_models.CategoryLodging),
	)...)

	res.Info.Description = a.describe(ctx, destination, res)
	res.Coordinates = a.locate(ctx, destination, entry, known)
	if res.Coordinates != nil {
		if a.providers.TimeZones != nil {
			res.TimeZone = a.providers.TimeZones.TimeZone(*res.Coordinates)
		}
		res.Forecast = a.forecast(ctx, *res.Coordinates, start, days)
	}
	return res
}

func (a *AggregatorService) catalogEntry(destination string) (catalog.Entry, bool) {
	if a.providers.Catalog == nil || destination == "" {
		return catalog.Entry{}, false
	}
	return a.providers.Catalog.Lookup(destination)
}

// collect runs a fallback chain: each link is tried once, in order, and the first
// error-free non-empty result wins. An exhausted chain yields no items.
func (a *AggregatorService) collect(ctx context.Context, res *AggregateResult, category trip_models.Category, links ...*chainLink) []trip_models.RecommendationItem {
	result := a.runChain(ctx, category, links)
	if !result.OK() {
		a.logger.Info("no recommendations found",
			zap.String("category", string(category)), zap.Error(result.Err))
		return nil
	}
	if result.Source == sourceWeb {
		res.UsedWebSearch = true
	}
	return result.Items
}

func (a *AggregatorService) runChain(ctx context.Context, category trip_models.Category, links []*chainLink) FetchResult {
	for _, link := range links {
		if link == nil {
			continue
		}
		items, err := link.fetch(ctx)
		result := FetchResult{Items: items, Source: link.source, Err: err}
		if result.OK() {
			return result
		}
		a.logFallback(category, result)
	}
	return FetchResult{Err: utils.ErrNoDataFound}
}

func (a *AggregatorService) logFallback(category trip_models.Category, result FetchResult) {
	fields := []zap.Field{
		zap.String("category", string(category)),
		zap.String("source", result.Source),
	}
	switch {
	case result.Err == nil:
		a.logger.Debug("provider returned no items, falling back", fields...)
	case errors.Is(result.Err, utils.ErrMissingCredential):
		a.logger.Debug("provider not configured, falling back", append(fields, zap.Error(result.Err))...)
	default:
		a.logger.Warn("provider request failed, falling back", append(fields, zap.Error(result.Err))...)
	}
}

func (a *AggregatorService) placeLink(destination, query string, band int, category trip_models.Category) *chainLink {
	if a.providers.Places == nil {
		return nil
	}
	return &chainLink{
		source: "places",
		fetch: func(ctx context.Context) ([]trip_models.RecommendationItem, error) {
			items, err := a.providers.Places.Search(ctx, destination, query, band)
			return withCategory(items, category), err
		},
	}
}

func (a *AggregatorService) reviewLink(destination string, interests []string) *chainLink {
	if a.providers.Reviews == nil {
		return nil
	}
	return &chainLink{
		source: "reviews",
		fetch: func(ctx context.Context) ([]trip_models.RecommendationItem, error) {
			items, err := a.providers.Reviews.Search(ctx, destination, interests)
			return withCategory(items, trip_models.CategoryAttraction), err
		},
	}
}

func (a *AggregatorService) webLink(destination, label string, category trip_models.Category) *chainLink {
	if a.providers.WebSearch == nil || a.providers.Scraper == nil {
		return nil
	}
	return &chainLink{
		source: sourceWeb,
		fetch: func(ctx context.Context) ([]trip_models.RecommendationItem, error) {
			return a.webRecommendations(ctx, destination, label, category)
		},
	}
}

var recommendationHeadingWords = []string{"best", "top", "must-see", "recommend"}

// webRecommendations searches travel blogs and turns promising headings of the top pages
// into recommendations.
func (a *AggregatorService) webRecommendations(ctx context.Context, destination, label string, category trip_models.Category) ([]trip_models.RecommendationItem, error) {
	query := fmt.Sprintf("Best %s in %s travel blog %d", label, destination, time.Now().Year())
	results, err := a.providers.WebSearch.Search(ctx, query, webSearchResults)
	if err != nil {
		return nil, err
	}

	var items []trip_models.RecommendationItem
	for _, result := range results[:min(webSearchResults, len(results))] {
		page, err := a.providers.Scraper.Scrape(ctx, result.Link)
		if err != nil {
			a.logger.Warn("scrape failed", zap.String("url", result.Link), zap.Error(err))
			continue
		}
		if page == nil {
			continue
		}
		for _, heading := range page.Headings {
			lower := strings.ToLower(heading)
			if !lo.SomeBy(recommendationHeadingWords, func(w string) bool { return strings.Contains(lower, w) }) {
				continue
			}
			description, _ := lo.Find(page.Paragraphs, func(p string) bool {
				return strings.Contains(strings.ToLower(p), lower)
			})
			items = append(items, trip_models.RecommendationItem{
				Name:        heading,
				Category:    category,
				Type:        label,
				Source:      result.Link,
				Description: description,
			})
		}
	}
	return items[:min(webRecommendations, len(items))], nil
}

func withCategory(items []trip_models.RecommendationItem, category trip_models.Category) []trip_models.RecommendationItem {
	for i := range items {
		items[i].Category = category
	}
	return items
}

var activityTimes = map[string][]string{
	"art":          {"morning", "afternoon"},
	"history":      {"morning", "afternoon"},
	"culture":      {"morning", "afternoon", "evening"},
	"architecture": {"morning"},
	"adventure":    {"morning"},
	"nature":       {"morning"},
	"photography":  {"morning", "evening"},
	"shopping":     {"afternoon"},
	"relaxation":   {"afternoon"},
	"food":         {"afternoon", "evening"},
}

func timeOfDayTags(label string) []string {
	return activityTimes[strings.ToLower(label)]
}

func (a *AggregatorService) describe(ctx context.Context, destination string, res *AggregateResult) string {
	if res.Info.Description != "" {
		return res.Info.Description
	}
	if a.providers.Describer != nil && destination != "" {
		description, err := a.providers.Describer.Describe(ctx, destination)
		if err == nil && strings.TrimSpace(description) != "" {
			return strings.TrimSpace(description)
		}
		if err != nil {
			a.logger.Warn("describer failed", zap.String("destination", destination), zap.Error(err))
		}
	}
	if res.UsedWebSearch {
		all := lo.Flatten([][]trip_models.RecommendationItem{res.Attractions, res.Info.Activities, res.Info.Dining, res.Info.Accommodation})
		if item, ok := lo.Find(all, func(item trip_models.RecommendationItem) bool {
			return item.Source != "" && item.Description != ""
		}); ok {
			return item.Description
		}
	}
	return defaultDescription
}

func (a *AggregatorService) locate(ctx context.Context, destination string, entry catalog.Entry, known bool) *trip_models.Coordinates {
	if a.providers.Geocoder != nil && destination != "" {
		coords, err := a.providers.Geocoder.Resolve(ctx, destination)
		if err == nil && coords != nil {
			return coords
		}
		if err != nil && !errors.Is(err, utils.ErrMissingCredential) {
			a.logger.Warn("geocoding failed", zap.String("destination", destination), zap.Error(err))
		}
	}
	if known && entry.Coordinates != nil {
		coords := *entry.Coordinates
		return &coords
	}
	return nil
}

// forecast looks up weather for each day, using current conditions when no forecast
// covers the date. Days without any data are omitted.
func (a *AggregatorService) forecast(ctx context.Context, coords trip_models.Coordinates, start time.Time, days int) map[string]*trip_models.Weather {
	if a.providers.Weather == nil {
		return nil
	}
	out := make(map[string]*trip_models.Weather)
	for day := 0; day < max(days, 1); day++ {
		date := start.AddDate(0, 0, day)
		weather, err := a.providers.Weather.ForecastForDate(ctx, coords, date)
		if err != nil && errors.Is(err, utils.ErrMissingCredential) {
			return nil
		}
		if err != nil || weather == nil {
			weather, err = a.providers.Weather.Current(ctx, coords)
		}
		if err != nil {
			a.logger.Warn("weather lookup failed", zap.Time("date", date), zap.Error(err))
			continue
		}
		if weather != nil {
			out[date.Format(time.DateOnly)] = weather
		}
	}
	return out
}
