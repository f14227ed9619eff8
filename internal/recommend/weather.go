// Package recommend ranks places for a given weather condition using the
// suitability scores assigned during classification.
package recommend

import (
	"fmt"
	"sort"

	"tshwane_places/internal/domain"
)

const DefaultLimit = 10

// minSuitable is the cutoff below which a place is not worth recommending
// for a condition. The classifier baseline is 3, so only places explicitly
// rated above or at neutral appear.
const minSuitable = domain.WeatherBaseline

// ForCondition returns up to limit places ranked by suitability for the
// condition, best first. Unknown conditions are an error so callers can
// surface a 400 instead of an empty list.
func ForCondition(records []*domain.PlaceRecord, condition string, limit int) ([]*domain.PlaceRecord, error) {
	if !validCondition(condition) {
		return nil, fmt.Errorf("unknown weather condition %q", condition)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var out []*domain.PlaceRecord
	for _, rec := range records {
		if rec.WeatherSuitability[condition] < minSuitable {
			continue
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		si := out[i].WeatherSuitability[condition]
		sj := out[j].WeatherSuitability[condition]
		if si != sj {
			return si > sj
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func validCondition(condition string) bool {
	for _, c := range domain.WeatherConditions {
		if c == condition {
			return true
		}
	}
	return false
}
