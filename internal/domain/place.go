package domain

// Sentiment is the label vocabulary shared by the rule-based tagger and any
// model-backed classifier plugged in above it.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// WeatherConditions is the fixed vocabulary for suitability scoring.
var WeatherConditions = []string{"sunny", "rainy", "cloudy", "hot", "cold"}

const (
	// WeatherBaseline is the neutral suitability score before any rule applies.
	WeatherBaseline = 3
	// MaxCategories caps how many categories a record retains.
	MaxCategories = 3
)

// PlaceRecord is the unit of reconciliation: one logical place merged from
// every source row sharing the same NormalizedKey. Every field except Name and
// NormalizedKey may stay at its zero value; a record with zero enrichment is
// still valid.
type PlaceRecord struct {
	Name          string
	NormalizedKey string

	Description string
	Type        string
	Category    string
	Address     string
	Phone       string
	Email       string
	Website     string

	Latitude     *float64
	Longitude    *float64
	Rating       *float64
	VisitorCount *int

	OpeningHours       string
	EntranceFee        string
	Accessibility      string
	BestTime           string
	VisitDuration      string
	Highlights         string
	Facilities         string
	SpecialFeatures    string
	SeasonalInfo       string
	PhotographyAllowed string
	SocialMedia        string

	AISentiment        Sentiment
	AICategories       []string
	WeatherSuitability map[string]int

	// DataSources keeps one entry per contributing row, duplicates included;
	// the summary report uses the repeats as a frequency-of-mention signal.
	DataSources []string

	// VerifiedSource is true only after a successful live-site enrichment.
	VerifiedSource bool
	LastUpdated    string

	// WebScraped holds the raw per-field extraction from the place's website.
	WebScraped map[string]string
}

// NewPlaceRecord seeds a record for the first sighting of a normalized key.
// Name keeps the raw (display) form of the resolved name.
func NewPlaceRecord(name, key string) *PlaceRecord {
	return &PlaceRecord{
		Name:          name,
		NormalizedKey: key,
		AISentiment:   SentimentNeutral,
		WebScraped:    map[string]string{},
	}
}

// HasCoordinates reports whether both latitude and longitude were accepted.
func (p *PlaceRecord) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// ShardType picks the output directory shard: type, else category, else other.
func (p *PlaceRecord) ShardType() string {
	if p.Type != "" {
		return p.Type
	}
	if p.Category != "" {
		return p.Category
	}
	return "other"
}
