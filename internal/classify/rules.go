// Package classify assigns coarse categories, a sentiment label, and weather
// suitability scores to a record's free text. The rule-based tier is always
// available; model-backed tiers are optional and chained in front of it.
package classify

import (
	"context"
	"strings"

	"tshwane_places/internal/domain"
)

// categoryKeywords is ordered: the output order of matched categories follows
// this table, and only the first MaxCategories hits are retained.
var categoryKeywords = []struct {
	name  string
	words []string
}{
	{"historical", []string{"historical", "history", "heritage", "ancient", "old"}},
	{"cultural", []string{"cultural", "culture", "art", "museum", "gallery"}},
	{"nature", []string{"nature", "park", "reserve", "wildlife", "animals", "birds", "outdoor", "zoo"}},
	{"architecture", []string{"architecture", "building", "monument", "sculpture"}},
	{"dining", []string{"dining", "restaurant", "food", "cuisine", "cafe"}},
	{"shopping", []string{"shopping", "market", "centre", "stores"}},
	{"entertainment", []string{"entertainment", "show", "event", "festival"}},
}

var positiveWords = []string{"beautiful", "grand", "fine", "excellent", "amazing", "wonderful", "great", "vibrant", "bustling"}
var negativeWords = []string{"poor", "bad", "terrible", "awful", "disappointing"}

// weatherRules apply in order; a later rule overwrites earlier adjustments on
// the same condition. There is no weighted blending.
var weatherRules = []struct {
	words  []string
	scores map[string]int
}{
	{[]string{"outdoor", "park", "nature", "reserve", "wildlife"},
		map[string]int{"sunny": 5, "rainy": 2, "cloudy": 4}},
	{[]string{"museum", "gallery", "indoor", "shopping"},
		map[string]int{"rainy": 5, "hot": 5, "cold": 5}},
	{[]string{"restaurant", "dining", "cafe"},
		map[string]int{"rainy": 4, "hot": 4, "cold": 4}},
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func countHits(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

// Categories returns every category with at least one keyword hit, capped at
// MaxCategories, in dictionary order.
func Categories(text string) []string {
	text = strings.ToLower(text)
	var out []string
	for _, c := range categoryKeywords {
		if containsAny(text, c.words) {
			out = append(out, c.name)
			if len(out) == domain.MaxCategories {
				break
			}
		}
	}
	return out
}

// SentimentOf counts positive vs negative word hits.
func SentimentOf(text string) domain.Sentiment {
	text = strings.ToLower(text)
	pos, neg := countHits(text, positiveWords), countHits(text, negativeWords)
	switch {
	case pos > neg:
		return domain.SentimentPositive
	case neg > pos:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

// WeatherSuitability scores the five fixed conditions from a neutral baseline.
func WeatherSuitability(text string) map[string]int {
	text = strings.ToLower(text)
	scores := make(map[string]int, len(domain.WeatherConditions))
	for _, c := range domain.WeatherConditions {
		scores[c] = domain.WeatherBaseline
	}
	for _, rule := range weatherRules {
		if !containsAny(text, rule.words) {
			continue
		}
		for cond, s := range rule.scores {
			scores[cond] = s
		}
	}
	return scores
}

// Rules is the terminal, dependency-free classifier. It never fails.
type Rules struct{}

func (Rules) Classify(_ context.Context, text string) (domain.Classification, error) {
	return domain.Classification{
		Categories: Categories(text),
		Sentiment:  SentimentOf(text),
	}, nil
}
