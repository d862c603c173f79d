package services

import (
	"testing"
	"travelplanner/internal/models/trip_models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(names ...string) []trip_models.RecommendationItem {
	out := make([]trip_models.RecommendationItem, 0, len(names))
	for _, name := range names {
		out = append(out, trip_models.RecommendationItem{Name: name, Category: trip_models.CategoryActivity})
	}
	return out
}

func TestFilterByPreferencesWithoutCriteria(t *testing.T) {
	in := items("a", "b", "c")

	assert.Equal(t, in, FilterByPreferences(in, nil))
	assert.Equal(t, in, FilterByPreferences(in, &trip_models.TravelProfile{}))
	assert.Equal(t, in, FilterByPreferences(in, &trip_models.TravelProfile{DietaryRestrictions: "None"}))
	assert.Empty(t, FilterByPreferences(nil, &trip_models.TravelProfile{Interests: "Art"}))
}

func TestFilterByPreferencesMatchesInterests(t *testing.T) {
	in := []trip_models.RecommendationItem{
		{Name: "Louvre", Category: trip_models.CategoryActivity, Type: "art"},
		{Name: "Sushi Bar", Category: trip_models.CategoryDining, Type: "restaurants"},
		{Name: "Art Deco Walk", Category: trip_models.CategoryActivity},
	}

	got := FilterByPreferences(in, &trip_models.TravelProfile{Interests: "Art"})

	require.Len(t, got, 2)
	assert.Equal(t, "Louvre", got[0].Name)
	assert.Equal(t, "Art Deco Walk", got[1].Name)
}

func TestFilterByPreferencesMatchesDietaryAndLodging(t *testing.T) {
	in := []trip_models.RecommendationItem{
		{Name: "Green Table", Category: trip_models.CategoryDining, Dietary: []string{"Vegan"}},
		{Name: "Steak House", Category: trip_models.CategoryDining},
		{Name: "Central Hostel", Category: trip_models.CategoryLodging, Type: "hostel"},
	}

	got := FilterByPreferences(in, &trip_models.TravelProfile{
		DietaryRestrictions:     "Vegan",
		AccommodationPreference: "Hostel",
	})

	require.Len(t, got, 2)
	assert.Equal(t, "Green Table", got[0].Name)
	assert.Equal(t, "Central Hostel", got[1].Name)
}

func TestFilterByPreferencesFallsBackToFirstFive(t *testing.T) {
	in := items("a", "b", "c", "d", "e", "f", "g")

	got := FilterByPreferences(in, &trip_models.TravelProfile{Interests: "Photography"})

	assert.Equal(t, in[:5], got)
}
