package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"travelplanner/internal/models/trip_models"
	mem "travelplanner/pkg/memcache"
	"travelplanner/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

func jsonHandler(t *testing.T, path string, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, path, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}
}

func TestGooglePlacesSearch(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		jsonHandler(t, "/place/textsearch/json", map[string]any{
			"status": "OK",
			"results": []map[string]any{
				{"name": "Louvre", "rating": 4.7, "price_level": 2, "formatted_address": "Rue de Rivoli"},
				{"name": "Orsay"},
				{"name": "3"}, {"name": "4"}, {"name": "5"}, {"name": "6"},
			},
		})(w, r)
	}))
	defer srv.Close()

	client := &GooglePlacesClient{HTTP: srv.Client(), APIKey: "k", BaseURL: srv.URL}
	items, err := client.Search(context.Background(), "Paris", "museums", 2)
	require.NoError(t, err)

	require.Len(t, items, placesLimit)
	assert.Equal(t, "Louvre", items[0].Name)
	assert.Equal(t, "museums", items[0].Type)
	assert.Equal(t, "Google Places", items[0].Source)
	assert.InDelta(t, 4.7, *items[0].Rating, 1e-9)
	assert.Equal(t, 2, *items[0].PriceLevel)
	assert.Nil(t, items[1].Rating)
	assert.Contains(t, query, "maxprice=2")
	assert.Contains(t, query, "query=museums+in+Paris")
}

func TestGooglePlacesErrors(t *testing.T) {
	_, err := NewGooglePlacesClient(http.DefaultClient, "").Search(context.Background(), "Paris", "museums", 0)
	assert.ErrorIs(t, err, utils.ErrMissingCredential)

	srv := httptest.NewServer(jsonHandler(t, "/place/textsearch/json",
		map[string]any{"status": "REQUEST_DENIED", "error_message": "bad key"}))
	defer srv.Close()

	client := &GooglePlacesClient{HTTP: srv.Client(), APIKey: "k", BaseURL: srv.URL}
	_, err = client.Search(context.Background(), "Paris", "museums", 0)
	assert.ErrorIs(t, err, utils.ErrProviderRequest)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	client = &GooglePlacesClient{HTTP: failing.Client(), APIKey: "k", BaseURL: failing.URL}
	_, err = client.Search(context.Background(), "Paris", "museums", 0)
	assert.ErrorIs(t, err, utils.ErrProviderRequest)
}

func TestGoogleGeocoderCachesResults(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		jsonHandler(t, "/geocode/json", map[string]any{
			"status": "OK",
			"results": []map[string]any{
				{"geometry": map[string]any{"location": map[string]any{"lat": 41.9, "lng": 12.5}}},
			},
		})(w, r)
	}))
	defer srv.Close()

	geocoder := &GoogleGeocoder{HTTP: srv.Client(), APIKey: "k", BaseURL: srv.URL, Cache: mem.NewCoordinates()}

	for range 2 {
		coords, err := geocoder.Resolve(context.Background(), "Rome")
		require.NoError(t, err)
		assert.InDelta(t, 41.9, coords.Lat, 1e-9)
		assert.InDelta(t, 12.5, coords.Lon, 1e-9)
	}
	assert.EqualValues(t, 1, hits.Load())

	// cached entries are served even without a key
	geocoder.APIKey = ""
	_, err := geocoder.Resolve(context.Background(), "rome")
	assert.NoError(t, err)
	_, err = geocoder.Resolve(context.Background(), "Milan")
	assert.ErrorIs(t, err, utils.ErrMissingCredential)
}

func TestGoogleGeocoderNoResults(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/geocode/json", map[string]any{"status": "ZERO_RESULTS", "results": []any{}}))
	defer srv.Close()

	geocoder := &GoogleGeocoder{HTTP: srv.Client(), APIKey: "k", BaseURL: srv.URL}
	_, err := geocoder.Resolve(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, utils.ErrNoDataFound)
}

type staticLocator struct{}

func (staticLocator) Resolve(context.Context, string) (*trip_models.Coordinates, error) {
	return &trip_models.Coordinates{Lat: 35.7, Lon: 139.7}, nil
}

func TestTripAdvisorSearchFiltersByInterest(t *testing.T) {
	var latLong string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		latLong = r.URL.Query().Get("latLong")
		jsonHandler(t, "/location/search", map[string]any{
			"data": []map[string]any{
				{"name": "Mori Art Museum", "address_obj": map[string]any{"address_string": "Roppongi"}},
				{"name": "Tsukiji Outer Market"},
			},
		})(w, r)
	}))
	defer srv.Close()

	client := &TripAdvisorClient{HTTP: srv.Client(), APIKey: "k", BaseURL: srv.URL, Geocoder: staticLocator{}}
	items, err := client.Search(context.Background(), "Tokyo", []string{"Art"})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "Mori Art Museum", items[0].Name)
	assert.Equal(t, "Roppongi", items[0].Location)
	assert.Equal(t, "TripAdvisor", items[0].Source)
	assert.Equal(t, "35.7,139.7", latLong)
}

func TestOpenWeather(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		json.NewEncoder(w).Encode(map[string]any{"list": []map[string]any{
			{"dt_txt": "2024-06-01 09:00:00", "main": map[string]any{"temp": 18.2},
				"weather": []map[string]any{{"description": "scattered clouds", "icon": "03d"}}},
			{"dt_txt": "2024-06-02 09:00:00", "main": map[string]any{"temp": 21.0},
				"weather": []map[string]any{{"description": "clear sky", "icon": "01d"}}},
		}})
	})
	mux.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"main": map[string]any{"temp": 16.5},
			"weather": []map[string]any{{"description": "mist", "icon": "50d"}}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := &OpenWeatherClient{HTTP: srv.Client(), APIKey: "k", BaseURL: srv.URL}
	coords := trip_models.Coordinates{Lat: 1, Lon: 2}
	ctx := context.Background()

	w, err := client.ForecastForDate(ctx, coords, time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, "clear sky", w.Conditions)
	assert.Equal(t, "01d", w.Icon)

	w, err = client.ForecastForDate(ctx, coords, time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, w)

	w, err = client.Current(ctx, coords)
	require.NoError(t, err)
	assert.InDelta(t, 16.5, w.Temp, 1e-9)
	assert.Equal(t, "mist", w.Conditions)

	_, err = NewOpenWeatherClient(srv.Client(), "").Current(ctx, coords)
	assert.ErrorIs(t, err, utils.ErrMissingCredential)
}

func TestSerperSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("X-API-KEY"))
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "best food in rome", req["q"])
		jsonHandler(t, "/search", map[string]any{"organic": []map[string]any{
			{"title": "A", "link": "https://a.example", "snippet": "a"},
			{"title": "B", "link": "https://b.example"},
			{"title": "C", "link": "https://c.example"},
		}})(w, r)
	}))
	defer srv.Close()

	client := &SerperClient{HTTP: srv.Client(), APIKey: "secret", BaseURL: srv.URL}
	results, err := client.Search(context.Background(), "best food in rome", 2)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "https://a.example", results[0].Link)
	assert.Equal(t, "a", results[0].Snippet)

	_, err = NewSerperClient(srv.Client(), "").Search(context.Background(), "q", 3)
	assert.ErrorIs(t, err, utils.ErrMissingCredential)
}

const resultsPage = `<html><body>
<div class="g"><a href="https://one.example"><h3>First <b>guide</b></h3></a></div>
<div class="g extra"><a href="https://two.example">no heading</a></div>
<div class="other"><a href="https://ignored.example"><h3>Ad</h3></a></div>
<div class="g"><a href="https://three.example"><h3>Third</h3></a></div>
</body></html>`

func TestGoogleHTMLSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	search := &GoogleHTMLSearch{HTTP: srv.Client(), BaseURL: srv.URL}
	results, err := search.Search(context.Background(), "rome blog", 2)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, trip_models.SearchResult{Title: "First guide", Link: "https://one.example"}, results[0])
	assert.Equal(t, trip_models.SearchResult{Title: "No title", Link: "https://two.example"}, results[1])
}

const articlePage = `<html><head><style>h1 { color: red }</style><script>var x = "<h2>no</h2>";</script></head>
<body>
<h1>Top 10 things to do in Rome</h1>
<p>Short one.</p>
<p>The Colosseum is the best place to start any visit.</p>
<h2>Best <em>gelato</em> spots</h2>
<h4>Footer</h4>
</body></html>`

func TestExtractPage(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(articlePage))
	require.NoError(t, err)

	page := extractPage(doc)

	assert.Equal(t, []string{"Top 10 things to do in Rome", "Best gelato spots"}, page.Headings)
	assert.Equal(t, []string{"The Colosseum is the best place to start any visit."}, page.Paragraphs)
}

func TestPageScraper(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	scraper := NewPageScraper(srv.Client())

	page, err := scraper.Scrape(context.Background(), srv.URL+"/article")
	require.NoError(t, err)
	assert.Len(t, page.Headings, 2)

	_, err = scraper.Scrape(context.Background(), srv.URL+"/missing")
	assert.ErrorIs(t, err, utils.ErrProviderRequest)

	_, err = scraper.Scrape(context.Background(), " ")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestTimeZoneFinder(t *testing.T) {
	finder := NewTimeZoneFinder(zap.NewNop())

	assert.Equal(t, "Europe/Paris", finder.TimeZone(trip_models.Coordinates{Lat: 48.8566, Lon: 2.3522}))
	assert.Equal(t, "Asia/Tokyo", finder.TimeZone(trip_models.Coordinates{Lat: 35.6762, Lon: 139.6503}))
}
