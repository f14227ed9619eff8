// Package search ranks place records against a free-text query with a small
// weighted field-match score. It is deliberately in-memory: the full record
// set for one municipality fits comfortably in a slice.
package search

import (
	"sort"
	"strings"

	"tshwane_places/internal/domain"
	"tshwane_places/internal/normalize"
)

const maxResults = 10

// Field weights. Name matches dominate, descriptions matter, the rest are
// tie-breakers.
const (
	nameWeight        = 10
	descriptionWeight = 5
	typeWeight        = 3
	categoryWeight    = 3
	aiCategoryWeight  = 2
	weatherWeight     = 5
)

// weatherTerms maps query words to the recommendation vocabulary so a search
// for "rainy day activities" also surfaces weather-suitable places.
var weatherTerms = map[string]string{
	"sunny":    "sunny",
	"sun":      "sunny",
	"rainy":    "rainy",
	"rain":     "rainy",
	"cloudy":   "cloudy",
	"overcast": "cloudy",
	"hot":      "hot",
	"cold":     "cold",
	"winter":   "cold",
}

// Result pairs a matched record with its score and a short snippet showing
// where the query hit.
type Result struct {
	Place   *domain.PlaceRecord
	Score   int
	Matched string
}

// Query scores every record against q and returns the top matches, best
// first. Ties break on name so results are stable across runs.
func Query(records []*domain.PlaceRecord, q string) []Result {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}

	var out []Result
	for _, rec := range records {
		score := scoreRecord(rec, q)
		if score == 0 {
			continue
		}
		out = append(out, Result{Place: rec, Score: score, Matched: snippet(rec, q)})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Place.Name < out[j].Place.Name
	})
	if len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}

func scoreRecord(rec *domain.PlaceRecord, q string) int {
	score := 0
	if strings.Contains(strings.ToLower(rec.Name), q) {
		score += nameWeight
	} else if looseNameMatch(rec, q) {
		score += nameWeight / 2
	}
	if strings.Contains(strings.ToLower(rec.Description), q) {
		score += descriptionWeight
	}
	if strings.Contains(strings.ToLower(rec.Type), q) {
		score += typeWeight
	}
	if strings.Contains(strings.ToLower(rec.Category), q) {
		score += categoryWeight
	}
	for _, cat := range rec.AICategories {
		if strings.Contains(strings.ToLower(cat), q) {
			score += aiCategoryWeight
			break
		}
	}
	score += weatherScore(rec, q)
	return score
}

// looseNameMatch compares normalized keys with trailing category words
// dropped, so "zoo" still surfaces "Zoo Restaurant" at reduced weight.
func looseNameMatch(rec *domain.PlaceRecord, q string) bool {
	qKey := normalize.WithoutCategorySuffix(normalize.Key(q))
	nKey := normalize.WithoutCategorySuffix(normalize.Key(rec.Name))
	return qKey != "" && strings.Contains(nKey, qKey)
}

// weatherScore rewards records rated above baseline for a weather condition
// named anywhere in the query.
func weatherScore(rec *domain.PlaceRecord, q string) int {
	if len(rec.WeatherSuitability) == 0 {
		return 0
	}
	for _, word := range strings.Fields(q) {
		cond, ok := weatherTerms[word]
		if !ok {
			continue
		}
		if rec.WeatherSuitability[cond] > domain.WeatherBaseline {
			return weatherWeight
		}
	}
	return 0
}

// snippet returns the sentence of the description containing the query, or a
// truncated description when no sentence matches.
func snippet(rec *domain.PlaceRecord, q string) string {
	desc := rec.Description
	if desc == "" {
		return rec.Name
	}
	for _, sentence := range strings.Split(desc, ".") {
		if strings.Contains(strings.ToLower(sentence), q) {
			return strings.TrimSpace(sentence) + "."
		}
	}
	if len(desc) > 120 {
		return desc[:120] + "..."
	}
	return desc
}
