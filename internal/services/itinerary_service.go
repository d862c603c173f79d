package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
	"travelplanner/internal/models/trip_models"
	"travelplanner/pkg/utils"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	attractionsShown   = 10
	activitiesShown    = 8
	diningShown        = 5
	lodgingShown       = 3
	scheduleCandidates = 3
	highlyRated        = 4.5
	scheduleLeadDays   = 7
)

// Picker chooses an index in [0, n).
type Picker interface {
	Pick(n int) int
}

type randomPicker struct{}

func (randomPicker) Pick(n int) int {
	return rand.IntN(n)
}

func NewRandomPicker() Picker {
	return randomPicker{}
}

type Clock func() time.Time

func SystemClock() Clock {
	return time.Now
}

type ItineraryServiceInterface interface {
	Compose(profile *trip_models.TravelProfile, result *AggregateResult, start time.Time) *trip_models.Itinerary
	Render(itinerary *trip_models.Itinerary) string
	// Generate aggregates, filters, composes and renders. It never panics; on failure the
	// itinerary is nil and the document carries the error note.
	Generate(ctx context.Context, profile *trip_models.TravelProfile) (*trip_models.Itinerary, string)
	GenerateItinerary(ctx context.Context, profile *trip_models.TravelProfile) string
}

type ItineraryService struct {
	aggregator AggregatorServiceInterface
	picker     Picker
	now        Clock
	logger     *zap.Logger
}

func NewItineraryService(aggregator AggregatorServiceInterface, picker Picker, clock Clock, logger *zap.Logger) ItineraryServiceInterface {
	if picker == nil {
		picker = NewRandomPicker()
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &ItineraryService{
		aggregator: aggregator,
		picker:     picker,
		now:        clock,
		logger:     logger,
	}
}

func (s *ItineraryService) GenerateItinerary(ctx context.Context, profile *trip_models.TravelProfile) string {
	_, document := s.Generate(ctx, profile)
	return document
}

func (s *ItineraryService) Generate(ctx context.Context, profile *trip_models.TravelProfile) (itinerary *trip_models.Itinerary, document string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("itinerary generation failed", zap.Any("panic", r))
			itinerary = nil
			document = fmt.Sprintf("⚠️ Error generating itinerary: %v", r)
		}
	}()

	start := utils.StartOfDay(s.now()).AddDate(0, 0, scheduleLeadDays)
	days := max(DaysFromDuration(profile.Duration), 1)

	result := s.aggregator.Aggregate(ctx, profile, start, days)
	itinerary = s.Compose(profile, result, start)
	return itinerary, s.Render(itinerary)
}

func (s *ItineraryService) Compose(profile *trip_models.TravelProfile, result *AggregateResult, start time.Time) *trip_models.Itinerary {
	if result == nil {
		result = &AggregateResult{}
	}
	days := max(DaysFromDuration(profile.Duration), 1)
	info := result.Info

	activities := FilterByPreferences(info.Activities, profile)
	dining := FilterByPreferences(info.Dining, profile)
	lodging := FilterByPreferences(info.Accommodation, profile)

	destination := titleCase(strings.TrimSpace(profile.Destination))
	if destination == "" {
		destination = "Your Destination"
	}

	itinerary := &trip_models.Itinerary{
		Destination:   destination,
		Days:          days,
		Description:   info.Description,
		Purpose:       lo.CoalesceOrEmpty(profile.Purpose, "Leisure"),
		Interests:     lo.CoalesceOrEmpty(profile.Interests, "General sightseeing"),
		Dietary:       profile.DietaryRestrictions,
		Mobility:      profile.MobilityConcerns,
		Accommodation: lo.CoalesceOrEmpty(profile.AccommodationPreference, "Standard"),
		TimeZone:      result.TimeZone,
		Attractions:   info.MustSee[:min(attractionsShown, len(info.MustSee))],
		Activities:    activities[:min(activitiesShown, len(activities))],
		Dining:        dining[:min(diningShown, len(dining))],
		Lodging:       lodging[:min(lodgingShown, len(lodging))],
		Budget:        BudgetFor(AmountFromBudget(profile.Budget), days),
		Transport:     info.Transport,
		UsedWebSearch: result.UsedWebSearch,
	}

	for day := 1; day <= days; day++ {
		date := start.AddDate(0, 0, day-1)
		itinerary.Schedule = append(itinerary.Schedule, trip_models.DayPlan{
			Day:       day,
			Date:      date,
			Weather:   result.WeatherOn(date),
			Morning:   s.pickActivity(activities, "morning", "Explore the city"),
			Afternoon: s.pickActivity(activities, "afternoon", "Visit local attractions"),
			Evening:   s.pickEvening(dining),
		})
	}
	return itinerary
}

// pickActivity chooses among the first few activities tagged for the time of day, or the
// first few activities when none is tagged. Highly rated items count twice.
func (s *ItineraryService) pickActivity(activities []trip_models.RecommendationItem, tag, fallback string) string {
	candidates := lo.Filter(activities, func(item trip_models.RecommendationItem, _ int) bool {
		return item.HasTag(tag)
	})
	if len(candidates) == 0 {
		candidates = activities
	}
	candidates = candidates[:min(scheduleCandidates, len(candidates))]
	if len(candidates) == 0 {
		return fallback
	}

	var weighted []string
	for _, item := range candidates {
		weighted = append(weighted, item.Name)
		if item.Rating != nil && *item.Rating >= highlyRated {
			weighted = append(weighted, item.Name)
		}
	}
	return weighted[s.picker.Pick(len(weighted))]
}

func (s *ItineraryService) pickEvening(dining []trip_models.RecommendationItem) string {
	var options []string
	if len(dining) > 0 {
		top := dining[:min(scheduleCandidates, len(dining))]
		options = append(options, "Dinner at "+top[s.picker.Pick(len(top))].Name)
	}
	options = append(options, "Night walking tour", "Cultural performance", "Relax at your accommodation")
	return options[s.picker.Pick(len(options))]
}

// BudgetFor splits a total budget 40/30/20/10 across accommodation, food, activities and
// transportation. Amounts are truncated to whole units.
func BudgetFor(total, days int) trip_models.BudgetBreakdown {
	days = max(days, 1)
	lodging := total * 40 / 100
	food := total * 30 / 100
	return trip_models.BudgetBreakdown{
		Total: total,
		Lines: []trip_models.BudgetLine{
			{Label: "Accommodation", Amount: lodging, Rate: lodging / days, RateFor: "night"},
			{Label: "Food", Amount: food, Rate: food / days, RateFor: "day"},
			{Label: "Activities", Amount: total * 20 / 100},
			{Label: "Transportation", Amount: total * 10 / 100},
		},
	}
}

func (s *ItineraryService) Render(itinerary *trip_models.Itinerary) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	fmt.Fprintf(&b, "# ✈️ %s %d-Day Itinerary\n\n", itinerary.Destination, itinerary.Days)
	fmt.Fprintf(&b, "_%s_\n\n", lo.CoalesceOrEmpty(itinerary.Description, defaultDescription))

	b.WriteString("## 📝 Trip Overview\n")
	fmt.Fprintf(&b, "- **Traveler**: %s trip\n", itinerary.Purpose)
	fmt.Fprintf(&b, "- **Interests**: %s\n", itinerary.Interests)
	if itinerary.Dietary != "" {
		fmt.Fprintf(&b, "- **Dietary**: %s\n", itinerary.Dietary)
	}
	if itinerary.Mobility != "" {
		fmt.Fprintf(&b, "- **Mobility**: %s\n", itinerary.Mobility)
	}
	fmt.Fprintf(&b, "- **Accommodation**: %s\n", itinerary.Accommodation)
	if itinerary.TimeZone != "" {
		fmt.Fprintf(&b, "- **Time zone**: %s\n", itinerary.TimeZone)
	}

	if len(itinerary.Attractions) > 0 {
		b.WriteString("\n## 🌟 Top Rated Attractions\n")
		for i, name := range itinerary.Attractions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, name)
		}
	}

	renderItems(&b, "🎭 Recommended Activities", itinerary.Activities)
	renderItems(&b, "🍽️ Dining Recommendations", itinerary.Dining)
	renderItems(&b, "🏨 Accommodation Options", itinerary.Lodging)

	fmt.Fprintf(&b, "\n## 📅 Sample %d-Day Schedule\n", itinerary.Days)
	for _, day := range itinerary.Schedule {
		fmt.Fprintf(&b, "\n**Day %d: %s**", day.Day, utils.FormatDayHeading(day.Date))
		if w := day.Weather; w != nil {
			fmt.Fprintf(&b, " 🌡️ %.0f°C, %s", w.Temp, w.Conditions)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "🌅 Morning: %s\n", day.Morning)
		fmt.Fprintf(&b, "⛅ Afternoon: %s\n", day.Afternoon)
		fmt.Fprintf(&b, "🌇 Evening: %s\n", day.Evening)
	}

	p.Fprintf(&b, "\n## 💰 Budget Breakdown ($%d)\n", itinerary.Budget.Total)
	for _, line := range itinerary.Budget.Lines {
		p.Fprintf(&b, "- %s: $%d", line.Label, line.Amount)
		if line.RateFor != "" {
			p.Fprintf(&b, " ($%d/%s)", line.Rate, line.RateFor)
		}
		b.WriteString("\n")
	}

	if len(itinerary.Transport) > 0 {
		b.WriteString("\n## 🚍 Transportation Tips\n")
		for _, tip := range itinerary.Transport {
			fmt.Fprintf(&b, "- **%s**: %s\n", titleCase(tip.Mode), tip.Tip)
		}
	}

	if itinerary.UsedWebSearch {
		b.WriteString("\n*Note: Some recommendations were sourced from recent web searches.*")
	}
	return b.String()
}

func renderItems(b *strings.Builder, heading string, items []trip_models.RecommendationItem) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- **%s**", item.Name)
		if item.Rating != nil {
			fmt.Fprintf(b, " ⭐ %s", strconv.FormatFloat(*item.Rating, 'f', -1, 64))
		}
		if item.PriceLevel != nil && *item.PriceLevel > 0 {
			fmt.Fprintf(b, " %s", strings.Repeat("$", *item.PriceLevel))
		}
		if item.Location != "" {
			fmt.Fprintf(b, "\n  📍 %s", item.Location)
		}
		b.WriteString("\n")
	}
}
