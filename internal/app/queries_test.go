package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tshwane_places/internal/app"
	"tshwane_places/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	places map[string]domain.PlaceRecord
	order  []string
	gets   int
	lists  int
}

func newFakeRepo(places ...domain.PlaceRecord) *fakeRepo {
	f := &fakeRepo{places: map[string]domain.PlaceRecord{}}
	for _, p := range places {
		f.places[p.NormalizedKey] = p
		f.order = append(f.order, p.NormalizedKey)
	}
	return f
}

func (f *fakeRepo) UpsertPlace(_ context.Context, p domain.PlaceRecord) error {
	if _, ok := f.places[p.NormalizedKey]; !ok {
		f.order = append(f.order, p.NormalizedKey)
	}
	f.places[p.NormalizedKey] = p
	return nil
}

func (f *fakeRepo) GetPlace(_ context.Context, key string) (domain.PlaceRecord, error) {
	f.gets++
	p, ok := f.places[key]
	if !ok {
		return domain.PlaceRecord{}, errors.New("place not found")
	}
	return p, nil
}

func (f *fakeRepo) ListPlaces(_ context.Context, q domain.PlacesQuery) ([]domain.PlaceRecord, error) {
	f.lists++
	var out []domain.PlaceRecord
	for _, key := range f.order {
		p := f.places[key]
		if q.Type != "" && p.Type != q.Type {
			continue
		}
		out = append(out, p)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.PlaceRecord:
		*d = v.(domain.PlaceRecord)
	case *[]domain.PlaceRecord:
		*d = v.([]domain.PlaceRecord)
	}
	return true, nil
}

func (c *fakeCache) Set(_ context.Context, key string, v any, _ int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func seedPlace(name, key, typ string) domain.PlaceRecord {
	p := domain.NewPlaceRecord(name, key)
	p.Type = typ
	return *p
}

// ---- tests ----

func TestGetPlace_CacheMissThenHit(t *testing.T) {
	repo := newFakeRepo(seedPlace("Pretoria Zoo", "pretoria zoo", "attraction"))
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 10*time.Minute)

	p, err := q.GetPlace(context.Background(), "pretoria zoo")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if p.Name != "Pretoria Zoo" {
		t.Fatalf("unexpected place: %+v", p)
	}

	// mutate the repo so a second read proves the cache served it
	mutated := repo.places["pretoria zoo"]
	mutated.Name = "SHOULD NOT SEE THIS"
	repo.places["pretoria zoo"] = mutated

	p2, err := q.GetPlace(context.Background(), "pretoria zoo")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if p2.Name != "Pretoria Zoo" {
		t.Fatalf("expected cached name, got %q", p2.Name)
	}
	if repo.gets != 1 {
		t.Fatalf("repo hit %d times, want 1", repo.gets)
	}
}

func TestListPlaces_CachedPerTypeAndLimit(t *testing.T) {
	repo := newFakeRepo(
		seedPlace("Pretoria Zoo", "pretoria zoo", "attraction"),
		seedPlace("Freedom Park", "freedom park", "monument"),
	)
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 10*time.Minute)

	out, err := q.ListPlaces(context.Background(), domain.PlacesQuery{Type: "monument", Limit: 5})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Freedom Park" {
		t.Fatalf("unexpected list: %+v", out)
	}

	if _, err := q.ListPlaces(context.Background(), domain.PlacesQuery{Type: "monument", Limit: 5}); err != nil {
		t.Fatalf("err: %v", err)
	}
	if repo.lists != 1 {
		t.Fatalf("repo listed %d times, want 1", repo.lists)
	}

	// a different limit is a different cache key
	if _, err := q.ListPlaces(context.Background(), domain.PlacesQuery{Type: "monument", Limit: 1}); err != nil {
		t.Fatalf("err: %v", err)
	}
	if repo.lists != 2 {
		t.Fatalf("repo listed %d times, want 2", repo.lists)
	}
}

func TestSearch_RunsOverRepository(t *testing.T) {
	repo := newFakeRepo(
		seedPlace("City Museum", "city museum", "museum"),
		seedPlace("Freedom Park", "freedom park", "monument"),
	)
	q := app.NewQueryService(repo, &fakeCache{}, time.Minute)

	got, err := q.Search(context.Background(), "museum")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 1 || got[0].Place.Name != "City Museum" {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestRecommend_UnknownConditionErrors(t *testing.T) {
	q := app.NewQueryService(newFakeRepo(), &fakeCache{}, time.Minute)
	if _, err := q.Recommend(context.Background(), "hailstorm", 5); err == nil {
		t.Fatal("expected error for unknown condition")
	}
}

func TestRecommend_RanksFromRepository(t *testing.T) {
	garden := seedPlace("Botanical Garden", "botanical garden", "nature")
	garden.WeatherSuitability = map[string]int{"sunny": 5}
	mall := seedPlace("Menlyn Mall", "menlyn mall", "shopping")
	mall.WeatherSuitability = map[string]int{"sunny": 2}

	q := app.NewQueryService(newFakeRepo(garden, mall), &fakeCache{}, time.Minute)
	got, err := q.Recommend(context.Background(), "sunny", 10)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Botanical Garden" {
		t.Fatalf("unexpected recommendations: %+v", got)
	}
}
