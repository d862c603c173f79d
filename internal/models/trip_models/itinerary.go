package trip_models

import "time"

type DayPlan struct {
	Day       int       `json:"day"`
	Date      time.Time `json:"date"`
	Weather   *Weather  `json:"weather,omitempty"`
	Morning   string    `json:"morning"`
	Afternoon string    `json:"afternoon"`
	Evening   string    `json:"evening"`
}

type BudgetLine struct {
	Label   string `json:"label"`
	Amount  int    `json:"amount"`
	Rate    int    `json:"rate,omitempty"`
	RateFor string `json:"rate_for,omitempty"` // "night" or "day"
}

type BudgetBreakdown struct {
	Total int          `json:"total"`
	Lines []BudgetLine `json:"lines"`
}

type Itinerary struct {
	Destination   string               `json:"destination"`
	Days          int                  `json:"days"`
	Description   string               `json:"description"`
	Purpose       string               `json:"purpose"`
	Interests     string               `json:"interests"`
	Dietary       string               `json:"dietary,omitempty"`
	Mobility      string               `json:"mobility,omitempty"`
	Accommodation string               `json:"accommodation"`
	TimeZone      string               `json:"time_zone,omitempty"`
	Attractions   []string             `json:"attractions"`
	Activities    []RecommendationItem `json:"activities"`
	Dining        []RecommendationItem `json:"dining"`
	Lodging       []RecommendationItem `json:"lodging"`
	Schedule      []DayPlan            `json:"schedule"`
	Budget        BudgetBreakdown      `json:"budget"`
	Transport     []TransportTip       `json:"transport,omitempty"`
	UsedWebSearch bool                 `json:"used_web_search"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
