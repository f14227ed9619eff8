// Package mysql persists reconciled place records so the read API can query
// them without re-reading the CSV output. Slice and map fields are stored as
// JSON columns.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"tshwane_places/internal/domain"
)

const defaultListLimit = 100

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertPlace(ctx context.Context, p domain.PlaceRecord) error {
	cats, _ := json.Marshal(p.AICategories)
	weather, _ := json.Marshal(p.WeatherSuitability)
	sources, _ := json.Marshal(p.DataSources)
	scraped, _ := json.Marshal(p.WebScraped)

	_, err := r.db.ExecContext(ctx, upsertPlaceSQL,
		p.NormalizedKey,
		p.Name,
		p.Description,
		p.Type,
		p.Category,
		p.Address,
		p.Phone,
		p.Email,
		p.Website,
		valF64(p.Latitude),
		valF64(p.Longitude),
		valF64(p.Rating),
		valInt(p.VisitorCount),
		p.OpeningHours,
		p.EntranceFee,
		p.Accessibility,
		p.BestTime,
		p.VisitDuration,
		p.Highlights,
		p.Facilities,
		p.SpecialFeatures,
		p.SeasonalInfo,
		p.PhotographyAllowed,
		p.SocialMedia,
		string(p.AISentiment),
		string(cats),
		string(weather),
		string(sources),
		p.VerifiedSource,
		nullStr(p.LastUpdated),
		string(scraped),
	)
	return err
}

func (r *Repo) GetPlace(ctx context.Context, key string) (domain.PlaceRecord, error) {
	row := r.db.QueryRowContext(ctx, getPlaceSQL, key)
	p, err := scanPlace(row)
	if err == sql.ErrNoRows {
		return domain.PlaceRecord{}, domain.ErrNotFound
	}
	return p, err
}

func (r *Repo) ListPlaces(ctx context.Context, q domain.PlacesQuery) ([]domain.PlaceRecord, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := r.db.QueryContext(ctx, listPlacesSQL, q.Type, q.Type, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PlaceRecord
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dst ...any) error
}

func scanPlace(row scanner) (domain.PlaceRecord, error) {
	var p domain.PlaceRecord
	var (
		lat, lng, rating            sql.NullFloat64
		visitors                    sql.NullInt64
		sentiment, lastUpdated      sql.NullString
		cats, weather, srcs, scrape []byte
	)

	if err := row.Scan(
		&p.NormalizedKey,
		&p.Name,
		&p.Description,
		&p.Type,
		&p.Category,
		&p.Address,
		&p.Phone,
		&p.Email,
		&p.Website,
		&lat, &lng, &rating, &visitors,
		&p.OpeningHours,
		&p.EntranceFee,
		&p.Accessibility,
		&p.BestTime,
		&p.VisitDuration,
		&p.Highlights,
		&p.Facilities,
		&p.SpecialFeatures,
		&p.SeasonalInfo,
		&p.PhotographyAllowed,
		&p.SocialMedia,
		&sentiment,
		&cats, &weather, &srcs,
		&p.VerifiedSource,
		&lastUpdated,
		&scrape,
	); err != nil {
		return domain.PlaceRecord{}, err
	}

	if lat.Valid {
		v := lat.Float64
		p.Latitude = &v
	}
	if lng.Valid {
		v := lng.Float64
		p.Longitude = &v
	}
	if rating.Valid {
		v := rating.Float64
		p.Rating = &v
	}
	if visitors.Valid {
		v := int(visitors.Int64)
		p.VisitorCount = &v
	}
	if sentiment.Valid {
		p.AISentiment = domain.Sentiment(sentiment.String)
	}
	if lastUpdated.Valid {
		p.LastUpdated = lastUpdated.String
	}
	_ = json.Unmarshal(cats, &p.AICategories)
	_ = json.Unmarshal(weather, &p.WeatherSuitability)
	_ = json.Unmarshal(srcs, &p.DataSources)
	_ = json.Unmarshal(scrape, &p.WebScraped)
	return p, nil
}
