// Package reconcile merges rows from many overlapping CSV sources into one
// PlaceRecord per normalized name.
package reconcile

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"tshwane_places/internal/domain"
	"tshwane_places/internal/normalize"
	"tshwane_places/internal/source"
)

/********** alias registries (single source of truth) **********/

// nameAliases is a priority list: the first non-empty match resolves the name.
var nameAliases = []string{"name", "place_name", "display_name", "title"}

// stringAliases maps each semantic scalar field to the column names sources
// use for it. Fill policy for all of these is first-writer-wins.
var stringAliases = map[string][]string{
	"type":                {"type", "place_type"},
	"category":            {"category"},
	"address":             {"address", "street_address", "physical_address"},
	"phone":               {"phone", "telephone", "contact_phone", "tel"},
	"email":               {"email", "contact_email"},
	"website":             {"website", "url", "web"},
	"opening_hours":       {"opening_hours", "hours", "operating_hours"},
	"entrance_fee":        {"entrance_fee", "admission", "price_range"},
	"accessibility":       {"accessibility"},
	"best_time":           {"best_time", "best_time_to_visit"},
	"visit_duration":      {"visit_duration", "duration"},
	"highlights":          {"highlights"},
	"facilities":          {"facilities", "amenities"},
	"special_features":    {"special_features", "features"},
	"seasonal_info":       {"seasonal_info"},
	"photography_allowed": {"photography_allowed", "photography"},
	"social_media":        {"social_media"},
}

var (
	latAliases     = []string{"lat", "latitude"}
	lngAliases     = []string{"lng", "longitude", "lon"}
	ratingAliases  = []string{"rating", "score", "stars"}
	visitorAliases = []string{"visitor_count", "visitors"}
)

// stringFields binds registry names to record fields so the fill loop stays
// table-driven instead of a wall of if-blocks.
var stringFields = map[string]func(*domain.PlaceRecord) *string{
	"type":                func(p *domain.PlaceRecord) *string { return &p.Type },
	"category":            func(p *domain.PlaceRecord) *string { return &p.Category },
	"address":             func(p *domain.PlaceRecord) *string { return &p.Address },
	"phone":               func(p *domain.PlaceRecord) *string { return &p.Phone },
	"email":               func(p *domain.PlaceRecord) *string { return &p.Email },
	"website":             func(p *domain.PlaceRecord) *string { return &p.Website },
	"opening_hours":       func(p *domain.PlaceRecord) *string { return &p.OpeningHours },
	"entrance_fee":        func(p *domain.PlaceRecord) *string { return &p.EntranceFee },
	"accessibility":       func(p *domain.PlaceRecord) *string { return &p.Accessibility },
	"best_time":           func(p *domain.PlaceRecord) *string { return &p.BestTime },
	"visit_duration":      func(p *domain.PlaceRecord) *string { return &p.VisitDuration },
	"highlights":          func(p *domain.PlaceRecord) *string { return &p.Highlights },
	"facilities":          func(p *domain.PlaceRecord) *string { return &p.Facilities },
	"special_features":    func(p *domain.PlaceRecord) *string { return &p.SpecialFeatures },
	"seasonal_info":       func(p *domain.PlaceRecord) *string { return &p.SeasonalInfo },
	"photography_allowed": func(p *domain.PlaceRecord) *string { return &p.PhotographyAllowed },
	"social_media":        func(p *domain.PlaceRecord) *string { return &p.SocialMedia },
}

/********** tiny helpers **********/

// resolve returns the first non-empty value among the aliased columns.
// Missing-cell markers from the pandas-era exports count as empty.
func resolve(row source.Row, aliases []string) (string, bool) {
	for _, col := range aliases {
		v := strings.TrimSpace(row[col])
		if v == "" || strings.EqualFold(v, "nan") || strings.EqualFold(v, "none") {
			continue
		}
		return v, true
	}
	return "", false
}

// parseFloat tolerates decimal commas ("8,5") the way several exports write them.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		// some sources write counts as "1200.0"
		if f, ok := parseFloat(s); ok {
			return int(f), true
		}
		return 0, false
	}
	return n, true
}

/********** reconciler **********/

// Reconciler accumulates (source, row) pairs into a keyed record map.
// Insertion order of first sighting is preserved for deterministic output.
type Reconciler struct {
	records map[string]*domain.PlaceRecord
	order   []string
	dropped int
}

func New() *Reconciler {
	return &Reconciler{records: map[string]*domain.PlaceRecord{}}
}

// AddTable feeds every row of a parsed CSV into the merge.
func (r *Reconciler) AddTable(t source.Table) {
	for _, row := range t.Rows {
		r.AddRow(t.Source, row)
	}
}

// AddRow merges one row. Rows with no resolvable name, or whose name
// normalizes to two characters or fewer, are dropped; that is data quality,
// not an error.
func (r *Reconciler) AddRow(sourceID string, row source.Row) {
	rawName, ok := resolve(row, nameAliases)
	if !ok {
		r.dropped++
		log.Debug().Str("source", sourceID).Msg("row dropped: no usable name column")
		return
	}
	key := normalize.Key(rawName)
	if !normalize.Usable(key) {
		r.dropped++
		log.Debug().Str("source", sourceID).Str("name", rawName).Msg("row dropped: key too short")
		return
	}

	rec, ok := r.records[key]
	if !ok {
		rec = domain.NewPlaceRecord(rawName, key)
		r.records[key] = rec
		r.order = append(r.order, key)
	}

	// Repeat sources are appended on purpose: the summary report counts
	// mentions, not distinct sources.
	rec.DataSources = append(rec.DataSources, sourceID)

	r.fill(rec, row)
}

func (r *Reconciler) fill(rec *domain.PlaceRecord, row source.Row) {
	// Scalar strings: first writer wins.
	for field, aliases := range stringAliases {
		v, ok := resolve(row, aliases)
		if !ok {
			continue
		}
		dst := stringFields[field](rec)
		if *dst == "" {
			*dst = v
		}
	}

	// Description is the one asymmetric field: a long_description always
	// replaces whatever is there; description/short_description only fill
	// an empty slot.
	if v, ok := resolve(row, []string{"description", "short_description"}); ok && rec.Description == "" {
		rec.Description = v
	}
	if v, ok := resolve(row, []string{"long_description"}); ok {
		rec.Description = v
	}

	// Numerics: lenient parse, silent skip on failure, range-check coordinates.
	if v, ok := resolve(row, latAliases); ok && rec.Latitude == nil {
		if f, ok := parseFloat(v); ok && f >= -90 && f <= 90 {
			rec.Latitude = &f
		}
	}
	if v, ok := resolve(row, lngAliases); ok && rec.Longitude == nil {
		if f, ok := parseFloat(v); ok && f >= -180 && f <= 180 {
			rec.Longitude = &f
		}
	}
	if v, ok := resolve(row, ratingAliases); ok && rec.Rating == nil {
		if f, ok := parseFloat(v); ok {
			rec.Rating = &f
		}
	}
	if v, ok := resolve(row, visitorAliases); ok && rec.VisitorCount == nil {
		if n, ok := parseInt(v); ok {
			rec.VisitorCount = &n
		}
	}
}

// Records returns the keyed map; callers mutate records in place (enrichment,
// classification) before output.
func (r *Reconciler) Records() map[string]*domain.PlaceRecord {
	return r.records
}

// Ordered returns records in first-sighting order.
func (r *Reconciler) Ordered() []*domain.PlaceRecord {
	out := make([]*domain.PlaceRecord, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.records[key])
	}
	return out
}

// Dropped reports how many rows were skipped for lacking a usable name.
func (r *Reconciler) Dropped() int {
	return r.dropped
}
