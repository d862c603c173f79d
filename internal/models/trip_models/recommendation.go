package trip_models

type Category string

const (
	CategoryAttraction Category = "attraction"
	CategoryActivity   Category = "activity"
	CategoryDining     Category = "dining"
	CategoryLodging    Category = "lodging"
)

type RecommendationItem struct {
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Type        string   `json:"type,omitempty"` // search label that produced the item
	Rating      *float64 `json:"rating,omitempty"`
	PriceLevel  *int     `json:"price_level,omitempty"`
	Location    string   `json:"location,omitempty"`
	Tags        []string `json:"tags,omitempty"` // morning, afternoon, evening
	Dietary     []string `json:"dietary,omitempty"`
	Source      string   `json:"source,omitempty"`
	Description string   `json:"description,omitempty"`
}

func (r RecommendationItem) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type TransportTip struct {
	Mode string `json:"mode" yaml:"mode"`
	Tip  string `json:"tip" yaml:"tip"`
}

type DestinationInfo struct {
	Description   string               `json:"description"`
	MustSee       []string             `json:"must_see"`
	Activities    []RecommendationItem `json:"activities"`
	Dining        []RecommendationItem `json:"dining"`
	Accommodation []RecommendationItem `json:"accommodation"`
	Transport     []TransportTip       `json:"transport,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

type Weather struct {
	Temp       float64 `json:"temp"`
	Conditions string  `json:"conditions"`
	Icon       string  `json:"icon"`
}

type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type ScrapedPage struct {
	Headings   []string `json:"headings"`
	Paragraphs []string `json:"paragraphs"`
}
