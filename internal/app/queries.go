package app

import (
	"context"
	"fmt"
	"time"

	"tshwane_places/internal/domain"
	"tshwane_places/internal/recommend"
	"tshwane_places/internal/search"
)

// QueryService serves the read API with a cache in front of the repository.
// Cache failures are ignored; the repository is the source of truth.
type QueryService struct {
	repo     domain.PlaceRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.PlaceRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetPlace(ctx context.Context, key string) (domain.PlaceRecord, error) {
	ck := "place:" + key
	var p domain.PlaceRecord
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, ck, &p); ok {
			return p, nil
		}
	}
	p, err := s.repo.GetPlace(ctx, key)
	if err != nil {
		return domain.PlaceRecord{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, ck, p, int(s.cacheTTL.Seconds()))
	}
	return p, nil
}

func (s *QueryService) ListPlaces(ctx context.Context, q domain.PlacesQuery) ([]domain.PlaceRecord, error) {
	ck := fmt.Sprintf("places:%s:%d", q.Type, q.Limit)
	var out []domain.PlaceRecord
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, ck, &out); ok {
			return out, nil
		}
	}
	out, err := s.repo.ListPlaces(ctx, q)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, ck, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

// Search runs the weighted text search over the full record set.
func (s *QueryService) Search(ctx context.Context, q string) ([]search.Result, error) {
	records, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return search.Query(records, q), nil
}

// Recommend ranks places for a weather condition.
func (s *QueryService) Recommend(ctx context.Context, condition string, limit int) ([]*domain.PlaceRecord, error) {
	records, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return recommend.ForCondition(records, condition, limit)
}

func (s *QueryService) all(ctx context.Context) ([]*domain.PlaceRecord, error) {
	list, err := s.ListPlaces(ctx, domain.PlacesQuery{})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.PlaceRecord, len(list))
	for i := range list {
		out[i] = &list[i]
	}
	return out, nil
}
