package trip_models

import "strings"

type Slot string

const (
	SlotDestination             Slot = "destination"
	SlotDuration                Slot = "duration"
	SlotBudget                  Slot = "budget"
	SlotPurpose                 Slot = "purpose"
	SlotInterests               Slot = "interests"
	SlotDietaryRestrictions     Slot = "dietary_restrictions"
	SlotMobilityConcerns        Slot = "mobility_concerns"
	SlotAccommodationPreference Slot = "accommodation_preference"

	// SlotConfirmGenerate is returned once every required slot is filled.
	SlotConfirmGenerate Slot = "confirm_generate"
)

// RequiredSlots is the canonical order in which the planner asks for trip details.
var RequiredSlots = []Slot{
	SlotDestination,
	SlotDuration,
	SlotBudget,
	SlotPurpose,
	SlotInterests,
	SlotDietaryRestrictions,
	SlotMobilityConcerns,
	SlotAccommodationPreference,
}

// CoreSlots must all be set before the planner offers to generate an itinerary.
var CoreSlots = []Slot{
	SlotDestination,
	SlotDuration,
	SlotBudget,
	SlotPurpose,
	SlotInterests,
}

// ProfileUpdate holds only the fields detected in one utterance.
type ProfileUpdate map[Slot]string

// TravelProfile is the accumulated answers of one conversation. An empty string means unset.
type TravelProfile struct {
	Destination             string `json:"destination,omitempty"`
	Duration                string `json:"duration,omitempty"`
	Budget                  string `json:"budget,omitempty"`
	Purpose                 string `json:"purpose,omitempty"`
	Interests               string `json:"interests,omitempty"`
	DietaryRestrictions     string `json:"dietary_restrictions,omitempty"`
	MobilityConcerns        string `json:"mobility_concerns,omitempty"`
	AccommodationPreference string `json:"accommodation_preference,omitempty"`
	Itinerary               string `json:"itinerary,omitempty"`
}

func (p *TravelProfile) field(slot Slot) *string {
	switch slot {
	case SlotDestination:
		return &p.Destination
	case SlotDuration:
		return &p.Duration
	case SlotBudget:
		return &p.Budget
	case SlotPurpose:
		return &p.Purpose
	case SlotInterests:
		return &p.Interests
	case SlotDietaryRestrictions:
		return &p.DietaryRestrictions
	case SlotMobilityConcerns:
		return &p.MobilityConcerns
	case SlotAccommodationPreference:
		return &p.AccommodationPreference
	}
	return nil
}

func (p *TravelProfile) Get(slot Slot) string {
	if f := p.field(slot); f != nil {
		return *f
	}
	return ""
}

func (p *TravelProfile) Set(slot Slot, value string) {
	if f := p.field(slot); f != nil {
		*f = value
	}
}

func (p *TravelProfile) IsSet(slot Slot) bool {
	return strings.TrimSpace(p.Get(slot)) != ""
}

// Merge fills empty fields from the update. Fields that already hold a value are kept.
func (p *TravelProfile) Merge(update ProfileUpdate) []Slot {
	var filled []Slot
	for _, slot := range RequiredSlots {
		value, ok := update[slot]
		if !ok || strings.TrimSpace(value) == "" || p.IsSet(slot) {
			continue
		}
		p.Set(slot, value)
		filled = append(filled, slot)
	}
	return filled
}

func (p *TravelProfile) HasCoreSlots() bool {
	for _, slot := range CoreSlots {
		if !p.IsSet(slot) {
			return false
		}
	}
	return true
}

// InterestList splits the comma-joined interests field into labels.
func (p *TravelProfile) InterestList() []string {
	if strings.TrimSpace(p.Interests) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(p.Interests, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (p *TravelProfile) Reset() {
	*p = TravelProfile{}
}
