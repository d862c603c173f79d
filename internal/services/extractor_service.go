package services

import (
	"regexp"
	"strconv"
	"strings"
	"travelplanner/internal/models/trip_models"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	defaultTripDays     = 5
	defaultBudgetAmount = 2000

	BudgetLuxury   = "luxury"
	BudgetModerate = "moderate"
	BudgetLow      = "low"
)

// extractRule pairs a matcher with the label it yields. Tables of rules are evaluated in order.
type extractRule struct {
	match func(text string) bool
	label string
}

func pattern(expr string) func(string) bool {
	re := regexp.MustCompile(expr)
	return re.MatchString
}

func rule(expr, label string) extractRule {
	return extractRule{match: pattern(expr), label: label}
}

func firstMatch(rules []extractRule, text string) (string, bool) {
	for _, r := range rules {
		if r.match(text) {
			return r.label, true
		}
	}
	return "", false
}

func allMatches(rules []extractRule, text string) []string {
	var labels []string
	for _, r := range rules {
		if r.match(text) {
			labels = append(labels, r.label)
		}
	}
	return lo.Uniq(labels)
}

var purposeRules = []extractRule{
	rule(`\bvacation\b`, "Leisure"),
	rule(`\bholiday\b`, "Leisure"),
	rule(`\bbusiness\b`, "Business"),
	rule(`\bwork\b`, "Business"),
	rule(`\bhoneymoon\b`, "Honeymoon"),
	rule(`\banniversary\b`, "Anniversary"),
	rule(`\bfamily\b`, "Family"),
	rule(`\bsolo\b`, "Solo"),
	rule(`\bcouple\b`, "Romantic"),
	rule(`\bfriends\b`, "Friends"),
	rule(`\bleisure\b`, "Leisure"),
	rule(`\bpleasure\b`, "Leisure"),
}

var interestRules = []extractRule{
	rule(`\bart\b`, "Art"),
	rule(`\bmuseum\b`, "Art"),
	rule(`\bhistory\b`, "History"),
	rule(`\bhistorical\b`, "History"),
	rule(`\bfood\b`, "Food"),
	rule(`\bcuisine\b`, "Food"),
	rule(`\beating\b`, "Food"),
	rule(`\brestaurant\b`, "Food"),
	rule(`\badventure\b`, "Adventure"),
	rule(`\bhiking\b`, "Adventure"),
	rule(`\boutdoor\b`, "Adventure"),
	rule(`\brelax\b`, "Relaxation"),
	rule(`\bspa\b`, "Relaxation"),
	rule(`\bbeach\b`, "Relaxation"),
	rule(`\bshop\b`, "Shopping"),
	rule(`\bnature\b`, "Nature"),
	rule(`\bpark\b`, "Nature"),
	rule(`\bphotography\b`, "Photography"),
	rule(`\barchitecture\b`, "Architecture"),
	rule(`\bmuseums\b`, "Art"),
	rule(`\bshopping\b`, "Shopping"),
	rule(`\bcultur(?:e|al)\b`, "Culture"),
}

var dietaryRules = []extractRule{
	rule(`\bvegetarian\b`, "Vegetarian"),
	rule(`\bvegan\b`, "Vegan"),
	rule(`\bgluten[\s-]?free\b`, "Gluten-free"),
	rule(`\bkosher\b`, "Kosher"),
	rule(`\bhalal\b`, "Halal"),
	rule(`\blactose[\s-]?free\b`, "Dairy-free"),
	rule(`\bnut[\s-]?free\b`, "Nut-free"),
	rule(`\bpescatarian\b`, "Pescatarian"),
	rule(`\bdairy[\s-]?free\b`, "Dairy-free"),
}

var mobilityRules = []extractRule{
	rule(`\bmobility\b`, "Limited mobility"),
	rule(`\bwheelchair\b`, "Wheelchair accessible"),
	rule(`\bdisability\b`, "Accessibility needed"),
	rule(`\bwalking\s+difficult`, "Limited walking"),
	rule(`\baccessibility\b`, "Accessibility needed"),
	rule(`\bphysical\s+limitation`, "Limited mobility"),
}

var accommodationRules = []extractRule{
	rule(`\bluxur(?:y|ious)?\b`, "Luxury"),
	rule(`\bboutique\b`, "Boutique"),
	rule(`\bbudget\b`, "Budget"),
	rule(`\bhostel\b`, "Hostel"),
	rule(`\bairbnb\b`, "Vacation rental"),
	rule(`\bcentral\b`, "Central location"),
	rule(`\bquiet\b`, "Quiet area"),
	rule(`\bresort\b`, "Resort"),
	rule(`\bapartment\b`, "Apartment"),
	rule(`\bguesthouse\b`, "Guesthouse"),
	rule(`\bb&b\b`, "Bed and breakfast"),
	rule(`\bhotel\b`, "Hotel"),
}

var (
	destinationPrepositionPattern = regexp.MustCompile(
		`\b(?:going to|visiting|travell?ing to|travel to|destination is|trip to|heading to|visit|go to)\s+([a-z][a-z'-]*)`)
	destinationInPattern = regexp.MustCompile(`\b[Ii]n\s+([A-Z][a-zA-Z'-]*)`)
	nonLetterPattern     = regexp.MustCompile(`[^a-zA-Z\s]`)
	spacesPattern        = regexp.MustCompile(`\s+`)

	durationDayPattern  = regexp.MustCompile(`(\d+)\s?-?\s?(?:days?|nights?)\b`)
	firstIntegerPattern = regexp.MustCompile(`(\d+)`)
	nonDigitPattern     = regexp.MustCompile(`[^\d]`)

	budgetAmountPattern = regexp.MustCompile(
		`(?:budget|price|cost|spend)(?:\s*(?:of|is|around|about|roughly|:))*\s*(\$?\d[\d,]*(?:\.\d{2})?)` +
			`|(\$\d[\d,]*(?:\.\d{2})?)` +
			`|(\d[\d,]*(?:\.\d{2})?)\s?(?:dollars|usd|eur|euros)\b`)
	bareNumberPattern = regexp.MustCompile(`\$?\d[\d,]*`)
	noneAnswerPattern = regexp.MustCompile(`^(?:no|none|nothing|nope|n/a|not really|no restrictions?|no concerns?)\b`)

	nonAnswerPattern = regexp.MustCompile(
		`\b(?:not sure|unsure|no idea|dunno|anywhere|anything|whatever|nowhere|nothing|undecided|no clue|no preference)\b`)
)

var budgetBandRules = []extractRule{
	rule(`\b(?:luxury|luxurious|high)\b`, BudgetLuxury),
	rule(`\b(?:moderate|medium)\b`, BudgetModerate),
	rule(`\b(?:budget|low|cheap)\b`, BudgetLow),
}

var cheapWordsPattern = regexp.MustCompile(`\b(?:low|cheap)\b`)

// knownCities are matched whole even when they span several words.
var knownCities = []string{
	"new york", "san francisco", "los angeles", "hong kong", "buenos aires", "rio de janeiro",
	"mexico city", "cape town", "kuala lumpur", "ho chi minh city", "da nang",
	"paris", "rome", "london", "tokyo", "barcelona", "lisbon", "berlin", "amsterdam", "prague",
	"vienna", "bangkok", "sydney", "dubai", "istanbul", "kyoto", "hanoi", "singapore", "seoul",
}

var knownCityPatterns = lo.Map(knownCities, func(city string, _ int) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(city) + `\b`)
})

// destinationStopWords are captured words that cannot be a place name.
var destinationStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "my": true, "our": true, "some": true, "see": true,
	"go": true, "for": true, "with": true, "and": true, "it": true, "there": true, "somewhere": true,
	"january": true, "february": true, "march": true, "april": true, "may": true, "june": true,
	"july": true, "august": true, "september": true, "october": true, "november": true,
	"december": true, "monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true, "summer": true, "winter": true,
	"spring": true, "autumn": true, "fall": true,
}

var replyWords = map[string]bool{
	"yes": true, "no": true, "ok": true, "okay": true, "sure": true, "hi": true, "hello": true,
	"hey": true, "thanks": true, "thank you": true, "maybe": true, "generate": true,
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func cleanPlaceName(raw string) string {
	name := nonLetterPattern.ReplaceAllString(raw, "")
	name = strings.TrimSpace(spacesPattern.ReplaceAllString(name, " "))
	return titleCase(name)
}

// ExtractTravelInfo parses an utterance into the profile fields it mentions.
func ExtractTravelInfo(text string) trip_models.ProfileUpdate {
	info := trip_models.ProfileUpdate{}
	if strings.TrimSpace(text) == "" {
		return info
	}
	lower := strings.ToLower(text)

	if dest := extractDestination(text, lower); dest != "" {
		info[trip_models.SlotDestination] = dest
	}
	if duration := extractDuration(lower); duration != "" {
		info[trip_models.SlotDuration] = duration
	}
	if budget := extractBudget(lower); budget != "" {
		info[trip_models.SlotBudget] = budget
	}
	if purpose, ok := firstMatch(purposeRules, lower); ok {
		info[trip_models.SlotPurpose] = purpose
	}
	if interests := allMatches(interestRules, lower); len(interests) > 0 {
		info[trip_models.SlotInterests] = strings.Join(interests, ", ")
	}
	if diet, ok := firstMatch(dietaryRules, lower); ok {
		info[trip_models.SlotDietaryRestrictions] = diet
	}
	if mobility, ok := firstMatch(mobilityRules, lower); ok {
		info[trip_models.SlotMobilityConcerns] = mobility
	}
	if accommodation, ok := firstMatch(accommodationRules, lower); ok {
		info[trip_models.SlotAccommodationPreference] = accommodation
	}
	return info
}

// ExtractForSlot runs ExtractTravelInfo and, when the tables found nothing at all, accepts a
// short direct answer to the slot being asked such as "12", "Lisbon" or "none".
func ExtractForSlot(text string, pending trip_models.Slot) trip_models.ProfileUpdate {
	info := ExtractTravelInfo(text)
	if len(info) > 0 {
		return info
	}
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return info
	}

	switch pending {
	case trip_models.SlotDuration:
		if m := firstIntegerPattern.FindString(lower); m != "" {
			if n, err := strconv.Atoi(m); err == nil && n > 0 {
				info[pending] = strconv.Itoa(n) + " days"
			}
		}
	case trip_models.SlotBudget:
		if m := bareNumberPattern.FindString(lower); m != "" {
			info[pending] = m
		}
	case trip_models.SlotDietaryRestrictions, trip_models.SlotMobilityConcerns:
		if noneAnswerPattern.MatchString(lower) {
			info[pending] = "None"
		}
	case trip_models.SlotDestination, trip_models.SlotPurpose, trip_models.SlotInterests,
		trip_models.SlotAccommodationPreference:
		if phrase := shortPhrase(lower); phrase != "" {
			info[pending] = titleCase(phrase)
		}
	}
	return info
}

// shortPhrase returns the answer when it is one to three words of letters that are not a
// conversational reply.
func shortPhrase(lower string) string {
	phrase := strings.Trim(lower, " .!?")
	if phrase == "" || replyWords[phrase] || nonAnswerPattern.MatchString(phrase) ||
		nonLetterPattern.MatchString(strings.ReplaceAll(phrase, "-", "")) {
		return ""
	}
	if words := strings.Fields(phrase); len(words) > 3 {
		return ""
	}
	return phrase
}

func extractDestination(original, lower string) string {
	if m := destinationPrepositionPattern.FindStringSubmatchIndex(lower); m != nil {
		rest := lower[m[2]:]
		if city, ok := knownCityPrefix(rest); ok {
			return cleanPlaceName(city)
		}
		if word := lower[m[2]:m[3]]; !destinationStopWords[word] {
			return cleanPlaceName(word)
		}
	}
	if m := destinationInPattern.FindStringSubmatch(original); m != nil {
		word := strings.ToLower(m[1])
		if city, ok := knownCityPrefix(strings.ToLower(original[strings.Index(original, m[1]):])); ok {
			return cleanPlaceName(city)
		}
		if !destinationStopWords[word] && word != "i" && !isTopicWord(word) {
			return cleanPlaceName(m[1])
		}
	}
	for i, re := range knownCityPatterns {
		if re.MatchString(lower) {
			return cleanPlaceName(knownCities[i])
		}
	}
	return ""
}

// isTopicWord reports whether word names an interest, purpose or lodging type rather than a place.
func isTopicWord(word string) bool {
	for _, rules := range [][]extractRule{interestRules, purposeRules, accommodationRules} {
		if _, ok := firstMatch(rules, word); ok {
			return true
		}
	}
	return false
}

func knownCityPrefix(text string) (string, bool) {
	for _, city := range knownCities {
		if strings.HasPrefix(text, city) {
			rest := text[len(city):]
			if rest == "" || !isLetter(rest[0]) {
				return city, true
			}
		}
	}
	return "", false
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func extractDuration(lower string) string {
	if strings.Contains(lower, "week") {
		return "7 days"
	}
	if strings.Contains(lower, "month") {
		return "30 days"
	}
	if m := durationDayPattern.FindStringSubmatch(lower); m != nil {
		return m[1] + " days"
	}
	return ""
}

func extractBudget(lower string) string {
	amount := ""
	if m := budgetAmountPattern.FindStringSubmatch(lower); m != nil {
		amount, _ = lo.Find(m[1:], func(g string) bool { return g != "" })
	}
	if band, ok := firstMatch(budgetBandRules, lower); ok {
		// "budget" alone names the topic, not the band, when an amount is given.
		if band != BudgetLow || amount == "" || cheapWordsPattern.MatchString(lower) {
			return band
		}
	}
	return amount
}

// DaysFromDuration normalizes the stored duration text to a day count.
func DaysFromDuration(duration string) int {
	text := strings.ToLower(strings.TrimSpace(duration))
	if text == "" {
		return defaultTripDays
	}
	if strings.Contains(text, "week") {
		return 7
	}
	if strings.Contains(text, "month") {
		return 30
	}
	if m := firstIntegerPattern.FindString(text); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	return defaultTripDays
}

// AmountFromBudget normalizes the stored budget text to a whole-dollar amount.
func AmountFromBudget(budget string) int {
	text := strings.ToLower(strings.TrimSpace(budget))
	if text == "" {
		return defaultBudgetAmount
	}
	switch {
	case strings.Contains(text, "luxury") || strings.Contains(text, "high"):
		return 5000
	case strings.Contains(text, "moderate") || strings.Contains(text, "medium"):
		return 2500
	case strings.Contains(text, "budget") || strings.Contains(text, "low") || strings.Contains(text, "cheap"):
		return 1000
	}
	digits := nonDigitPattern.ReplaceAllString(text, "")
	if digits == "" {
		return defaultBudgetAmount
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return defaultBudgetAmount
	}
	return n
}

// PriceBand buckets a budget amount into the 1-3 price tier sent to place search.
func PriceBand(amount int) int {
	switch {
	case amount < 1500:
		return 1
	case amount < 3000:
		return 2
	default:
		return 3
	}
}
