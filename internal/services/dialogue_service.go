package services

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"travelplanner/internal/models/trip_models"
	"travelplanner/pkg/utils"

	"go.uber.org/zap"
)

const (
	WelcomeMessage      = "🌍 Welcome to your AI Travel Planner! Where would you like to go?"
	InvalidRequestReply = "Please provide a valid travel request"
	ReadyToGenerate     = "I have enough information to generate your itinerary. Would you like me to create it now?"
	fallbackQuestion    = "How can I help you with your travel plans?"
)

var questions = map[trip_models.Slot]string{
	trip_models.SlotDestination:             "Where would you like to go?",
	trip_models.SlotDuration:                "How many days will your trip be?",
	trip_models.SlotBudget:                  "What's your approximate budget for this trip?",
	trip_models.SlotPurpose:                 "Is this trip for leisure, business, or a special occasion?",
	trip_models.SlotInterests:               "What are your main interests? (e.g., art, food, adventure)",
	trip_models.SlotDietaryRestrictions:     "Any dietary restrictions we should consider?",
	trip_models.SlotMobilityConcerns:        "Any mobility concerns we should account for?",
	trip_models.SlotAccommodationPreference: "What type of accommodation do you prefer?",
	trip_models.SlotConfirmGenerate:         "Would you like me to generate your itinerary now?",
}

// Question returns the fixed prompt for a slot.
func Question(slot trip_models.Slot) string {
	if q, ok := questions[slot]; ok {
		return q
	}
	return fallbackQuestion
}

// NextPrompt returns the first unfilled slot in canonical order, or SlotConfirmGenerate.
// It applies the dietary default first; see applyDietaryDefault.
func NextPrompt(profile *trip_models.TravelProfile) trip_models.Slot {
	applyDietaryDefault(profile)
	return nextSlot(profile)
}

// dietaryDefaults reports whether an unset dietary restriction resolves to "None": the
// traveler has named their interests and food is not among them.
func dietaryDefaults(profile *trip_models.TravelProfile) bool {
	return !profile.IsSet(trip_models.SlotDietaryRestrictions) &&
		profile.IsSet(trip_models.SlotInterests) &&
		!strings.Contains(strings.ToLower(profile.Interests), "food")
}

func applyDietaryDefault(profile *trip_models.TravelProfile) {
	if dietaryDefaults(profile) {
		profile.DietaryRestrictions = "None"
	}
}

// nextSlot is NextPrompt without side effects. A dietary slot that would default counts as
// filled.
func nextSlot(profile *trip_models.TravelProfile) trip_models.Slot {
	for _, slot := range trip_models.RequiredSlots {
		if profile.IsSet(slot) {
			continue
		}
		if slot == trip_models.SlotDietaryRestrictions && dietaryDefaults(profile) {
			continue
		}
		return slot
	}
	return trip_models.SlotConfirmGenerate
}

// clarification is asked instead of advancing when the answer to a pending slot is vague.
// When accept is set, an affirmative reply fills the slot with it.
type clarification struct {
	slot     trip_models.Slot
	match    func(string) bool
	question string
	accept   string
}

var clarifications = []clarification{
	{trip_models.SlotBudget, pattern(`\b(?:moderate|medium)\b`),
		"For a moderate budget, I'd suggest $150-$200 per day. Does this range work for you?", BudgetModerate},
	{trip_models.SlotBudget, pattern(`\b(?:low|cheap|budget)\b`),
		"For a budget trip, I'd suggest $50-$100 per day. Does this range work for you?", BudgetLow},
	{trip_models.SlotBudget, pattern(`\b(?:high|luxury|expensive)\b`),
		"For a luxury trip, I'd suggest $300+ per day. Does this range work for you?", BudgetLuxury},
	{trip_models.SlotBudget, pattern(`\b(?:some|enough)\b`),
		"Would you like me to suggest a budget range based on your destination?", BudgetModerate},

	{trip_models.SlotDuration, pattern(`\bweeks?\b`),
		"Would you like me to plan for 7 days (1 week)?", "7 days"},
	{trip_models.SlotDuration, pattern(`\bmonths?\b`),
		"Would you like me to plan for 30 days (1 month)?", "30 days"},
	{trip_models.SlotDuration, pattern(`\b(?:long|extended)\b`),
		"Would you like me to suggest an ideal duration for your destination?", "5 days"},

	{trip_models.SlotInterests, pattern(`\b(?:everything|all)\b`),
		"I'll include a mix of activities. Any particular favorites among these: cultural, adventure, food, relaxation?",
		"Culture, Adventure, Food, Relaxation"},
	{trip_models.SlotInterests, pattern(`\b(?:some|few)\b`),
		"Would you like me to suggest a balanced mix of activities, or focus on specific types?",
		"Culture, Food, Relaxation"},
	{trip_models.SlotInterests, pattern(`\bnot sure\b|\bdon'?t know\b`),
		"I can suggest popular activities for your destination. Would you like that?",
		"Culture, Food, Nature"},

	{trip_models.SlotAccommodationPreference, pattern(`\bsurprise\b|\byou choose\b`),
		"I can select a highly-rated option that fits your budget. Is that okay?", "Hotel"},
	{trip_models.SlotAccommodationPreference, pattern(`\bnot sure\b|\bdon'?t know\b`),
		"Would you like me to suggest the best accommodation types for your destination?", "Hotel"},
}

var (
	affirmativePattern = regexp.MustCompile(`\b(?:yes|yeah|yep|sure|ok|okay|fine|works|please|sounds good)\b`)
	generatePattern    = regexp.MustCompile(`yes|generate`)
)

// Answers that already carry a concrete value are never treated as vague.
var concreteAnswers = map[trip_models.Slot]*regexp.Regexp{
	trip_models.SlotBudget:   regexp.MustCompile(`\d`),
	trip_models.SlotDuration: durationDayPattern,
}

func findClarification(slot trip_models.Slot, lower string) *clarification {
	if re, ok := concreteAnswers[slot]; ok && re.MatchString(lower) {
		return nil
	}
	for i := range clarifications {
		c := &clarifications[i]
		if c.slot == slot && c.match(lower) {
			return c
		}
	}
	return nil
}

type DialogueServiceInterface interface {
	HandleTurn(ctx context.Context, utterance string) string
	Reset()
	Profile() trip_models.TravelProfile
	History() []trip_models.Message
	NextSlot() trip_models.Slot
	Itinerary() (*trip_models.Itinerary, error)
}

type DialogueService struct {
	mu        sync.Mutex
	planner   ItineraryServiceInterface
	logger    *zap.Logger
	profile   trip_models.TravelProfile
	history   []trip_models.Message
	pending   *clarification
	itinerary *trip_models.Itinerary
}

func NewDialogueService(planner ItineraryServiceInterface, logger *zap.Logger) DialogueServiceInterface {
	s := &DialogueService{
		planner: planner,
		logger:  logger,
	}
	s.reset()
	return s
}

// HandleTurn processes one user utterance and returns the assistant reply.
// Turns are serialized; the conversation has a single writer.
func (s *DialogueService) HandleTurn(ctx context.Context, utterance string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := strings.TrimSpace(utterance)
	if text == "" {
		return InvalidRequestReply
	}

	s.history = append(s.history, trip_models.Message{Role: trip_models.RoleUser, Content: text})
	reply := s.respond(ctx, text)
	s.history = append(s.history, trip_models.Message{Role: trip_models.RoleAssistant, Content: reply})
	return reply
}

func (s *DialogueService) respond(ctx context.Context, text string) string {
	lower := strings.ToLower(text)

	if c := s.pending; c != nil {
		s.pending = nil
		if affirmativePattern.MatchString(lower) {
			if !s.profile.IsSet(c.slot) {
				s.profile.Set(c.slot, c.accept)
				s.logger.Debug("clarification accepted",
					zap.String("slot", string(c.slot)), zap.String("value", c.accept))
			}
			return s.askNext()
		}
	}

	if s.profile.HasCoreSlots() && generatePattern.MatchString(lower) {
		return s.generate(ctx)
	}

	pending := nextSlot(&s.profile)
	if c := findClarification(pending, lower); c != nil {
		if c.accept != "" {
			s.pending = c
		}
		return c.question
	}

	filled := s.profile.Merge(ExtractForSlot(text, pending))
	applyDietaryDefault(&s.profile)
	s.logger.Debug("turn processed",
		zap.String("pending_slot", string(pending)),
		zap.Int("filled", len(filled)))

	if s.profile.HasCoreSlots() {
		if generatePattern.MatchString(lower) {
			return s.generate(ctx)
		}
		return ReadyToGenerate
	}

	if len(filled) == 0 {
		s.logger.Debug("nothing extracted, asking again",
			zap.String("slot", string(pending)), zap.Error(utils.ErrMalformedInput))
		return Question(pending)
	}
	return s.askNext()
}

func (s *DialogueService) askNext() string {
	if s.profile.HasCoreSlots() {
		return ReadyToGenerate
	}
	return Question(NextPrompt(&s.profile))
}

func (s *DialogueService) generate(ctx context.Context) string {
	s.logger.Info("generating itinerary",
		zap.String("destination", s.profile.Destination),
		zap.String("duration", s.profile.Duration))

	itinerary, document := s.planner.Generate(ctx, &s.profile)
	s.profile.Itinerary = document
	if itinerary != nil {
		s.itinerary = itinerary
	}
	return document
}

func (s *DialogueService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *DialogueService) reset() {
	s.profile.Reset()
	s.history = []trip_models.Message{{Role: trip_models.RoleAssistant, Content: WelcomeMessage}}
	s.pending = nil
	s.itinerary = nil
}

func (s *DialogueService) Profile() trip_models.TravelProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *DialogueService) History() []trip_models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]trip_models.Message, len(s.history))
	copy(out, s.history)
	return out
}

func (s *DialogueService) NextSlot() trip_models.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return nextSlot(&s.profile)
}

func (s *DialogueService) Itinerary() (*trip_models.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.itinerary == nil {
		return nil, utils.ErrNoItinerary
	}
	return s.itinerary, nil
}
