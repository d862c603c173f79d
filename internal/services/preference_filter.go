package services

import (
	"strings"
	"travelplanner/internal/models/trip_models"

	"github.com/samber/lo"
)

const filterFallbackSize = 5

// FilterByPreferences keeps items that match the traveler's interests, dietary restriction or
// accommodation preference. It never turns a non-empty list into an empty one: when nothing
// matches, the first five items are returned instead.
func FilterByPreferences(items []trip_models.RecommendationItem, profile *trip_models.TravelProfile) []trip_models.RecommendationItem {
	if len(items) == 0 || profile == nil {
		return items
	}

	interests := lo.Map(profile.InterestList(), func(s string, _ int) string { return strings.ToLower(s) })
	dietary := strings.ToLower(strings.TrimSpace(profile.DietaryRestrictions))
	if dietary == "none" {
		dietary = ""
	}
	accommodation := strings.ToLower(strings.TrimSpace(profile.AccommodationPreference))

	if len(interests) == 0 && dietary == "" && accommodation == "" {
		return items
	}

	filtered := lo.Filter(items, func(item trip_models.RecommendationItem, _ int) bool {
		name := strings.ToLower(item.Name)
		kind := strings.ToLower(string(item.Category)) + " " + strings.ToLower(item.Type)

		if lo.ContainsBy(interests, func(interest string) bool {
			return strings.Contains(name, interest) || strings.Contains(kind, interest)
		}) {
			return true
		}
		if dietary != "" && lo.ContainsBy(item.Dietary, func(tag string) bool {
			return strings.Contains(strings.ToLower(tag), dietary)
		}) {
			return true
		}
		return accommodation != "" && strings.Contains(kind, accommodation)
	})

	if len(filtered) == 0 {
		return items[:min(filterFallbackSize, len(items))]
	}
	return filtered
}
