package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	httpserver "tshwane_places/internal/adapters/http_server"
	"tshwane_places/internal/app"
	"tshwane_places/internal/domain"
)

type stubRepo struct {
	places map[string]domain.PlaceRecord
	order  []string
}

func (s *stubRepo) UpsertPlace(_ context.Context, p domain.PlaceRecord) error { return nil }

func (s *stubRepo) GetPlace(_ context.Context, key string) (domain.PlaceRecord, error) {
	p, ok := s.places[key]
	if !ok {
		return domain.PlaceRecord{}, domain.ErrNotFound
	}
	return p, nil
}

func (s *stubRepo) ListPlaces(_ context.Context, q domain.PlacesQuery) ([]domain.PlaceRecord, error) {
	var out []domain.PlaceRecord
	for _, key := range s.order {
		p := s.places[key]
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

func newTestServer(t *testing.T, places ...domain.PlaceRecord) *httptest.Server {
	t.Helper()
	repo := &stubRepo{places: map[string]domain.PlaceRecord{}}
	for _, p := range places {
		repo.places[p.NormalizedKey] = p
		repo.order = append(repo.order, p.NormalizedKey)
	}
	q := app.NewQueryService(repo, nil, time.Minute)
	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{Q: q})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func sample() domain.PlaceRecord {
	p := domain.NewPlaceRecord("Pretoria Zoo", "pretoria zoo")
	p.Type = "attraction"
	p.Description = "National zoological gardens."
	p.WeatherSuitability = map[string]int{"sunny": 5, "rainy": 2}
	return *p
}

func TestGetPlace(t *testing.T) {
	ts := newTestServer(t, sample())

	res, err := http.Get(ts.URL + "/v1/places/" + url.PathEscape("pretoria zoo"))
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var body struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Key != "pretoria zoo" || body.Name != "Pretoria Zoo" {
		t.Fatalf("body: %+v", body)
	}
}

func TestGetPlace_NotFound(t *testing.T) {
	ts := newTestServer(t)
	res, err := http.Get(ts.URL + "/v1/places/absent")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content type %q", ct)
	}
}

func TestGetPlace_ETag304(t *testing.T) {
	ts := newTestServer(t, sample())

	res, err := http.Get(ts.URL + "/v1/places/" + url.PathEscape("pretoria zoo"))
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/places/"+url.PathEscape("pretoria zoo"), nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional GET: %v", err)
	}
	res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("status %d", res2.StatusCode)
	}
}

func TestListPlaces_InvalidLimit(t *testing.T) {
	ts := newTestServer(t, sample())
	res, err := http.Get(ts.URL + "/v1/places?limit=9999")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d", res.StatusCode)
	}
}

func TestListPlaces_TypeFilter(t *testing.T) {
	park := domain.NewPlaceRecord("Freedom Park", "freedom park")
	park.Type = "monument"
	ts := newTestServer(t, sample(), *park)

	res, err := http.Get(ts.URL + "/v1/places?type=monument")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()

	var body struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].Name != "Freedom Park" {
		t.Fatalf("items: %+v", body.Items)
	}
}

func TestSearch(t *testing.T) {
	ts := newTestServer(t, sample())

	res, err := http.Get(ts.URL + "/v1/search?q=zoo")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()

	var body struct {
		Query   string `json:"query"`
		Results []struct {
			Score   int `json:"score"`
			Place   struct{ Name string }
			Matched string `json:"matched_content"`
		} `json:"results"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Results) != 1 || body.Results[0].Score == 0 {
		t.Fatalf("results: %+v", body.Results)
	}
}

func TestSearch_MissingQuery(t *testing.T) {
	ts := newTestServer(t)
	res, err := http.Get(ts.URL + "/v1/search")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d", res.StatusCode)
	}
}

func TestRecommend_UnknownCondition(t *testing.T) {
	ts := newTestServer(t, sample())
	res, err := http.Get(ts.URL + "/v1/recommendations?condition=blizzard")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d", res.StatusCode)
	}
}

func TestRecommend(t *testing.T) {
	ts := newTestServer(t, sample())
	res, err := http.Get(ts.URL + "/v1/recommendations?condition=sunny")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var body struct {
		Condition string `json:"condition"`
		Items     []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Condition != "sunny" || len(body.Items) != 1 {
		t.Fatalf("body: %+v", body)
	}
}
