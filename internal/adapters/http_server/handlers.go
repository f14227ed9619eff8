// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tshwane_places/internal/app"
	"tshwane_places/internal/domain"
)

type Handlers struct{ Q *app.QueryService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/places", h.listPlaces)
	s.mux.Get("/v1/places/{key}", h.getPlace)
	s.mux.Get("/v1/search", h.search)
	s.mux.Get("/v1/recommendations", h.recommend)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) getPlace(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	resp, err := h.Q.GetPlace(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "place not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	writeJSON(w, r, placeView(resp))
}

func (h *Handlers) listPlaces(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	q := domain.PlacesQuery{Type: r.URL.Query().Get("type"), Limit: limit}
	out, err := h.Q.ListPlaces(r.Context(), q)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	views := make([]placeJSON, 0, len(out))
	for i := range out {
		views = append(views, placeView(out[i]))
	}
	writeJSON(w, r, map[string]any{"items": views})
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeProblem(w, http.StatusBadRequest, "Missing query", "q parameter is required")
		return
	}
	results, err := h.Q.Search(r.Context(), q)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	type hit struct {
		Place   placeJSON `json:"place"`
		Score   int       `json:"score"`
		Matched string    `json:"matched_content"`
	}
	hits := make([]hit, 0, len(results))
	for _, res := range results {
		hits = append(hits, hit{Place: placeView(*res.Place), Score: res.Score, Matched: res.Matched})
	}
	writeJSON(w, r, map[string]any{"query": q, "results": hits})
}

func (h *Handlers) recommend(w http.ResponseWriter, r *http.Request) {
	condition := r.URL.Query().Get("condition")
	if condition == "" {
		writeProblem(w, http.StatusBadRequest, "Missing condition", "condition parameter is required")
		return
	}
	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 100 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 100")
			return
		}
		limit = l
	}

	out, err := h.Q.Recommend(r.Context(), condition, limit)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid condition", err.Error())
		return
	}
	views := make([]placeJSON, 0, len(out))
	for _, p := range out {
		views = append(views, placeView(*p))
	}
	writeJSON(w, r, map[string]any{"condition": condition, "items": views})
}

// placeJSON is the wire shape; field names follow the CSV column names.
type placeJSON struct {
	Key                string            `json:"key"`
	Name               string            `json:"name"`
	Description        string            `json:"description,omitempty"`
	Type               string            `json:"type,omitempty"`
	Category           string            `json:"category,omitempty"`
	Address            string            `json:"address,omitempty"`
	Phone              string            `json:"phone,omitempty"`
	Email              string            `json:"email,omitempty"`
	Website            string            `json:"website,omitempty"`
	Lat                *float64          `json:"lat,omitempty"`
	Lng                *float64          `json:"lng,omitempty"`
	Rating             *float64          `json:"rating,omitempty"`
	VisitorCount       *int              `json:"visitor_count,omitempty"`
	OpeningHours       string            `json:"opening_hours,omitempty"`
	SocialMedia        string            `json:"social_media,omitempty"`
	AISentiment        string            `json:"ai_sentiment"`
	AICategories       []string          `json:"ai_categories,omitempty"`
	WeatherSuitability map[string]int    `json:"weather_suitability,omitempty"`
	DataSources        []string          `json:"data_sources,omitempty"`
	VerifiedSource     bool              `json:"verified_source"`
	LastUpdated        string            `json:"last_updated,omitempty"`
	WebScraped         map[string]string `json:"web_scraped_data,omitempty"`
}

func placeView(p domain.PlaceRecord) placeJSON {
	return placeJSON{
		Key:                p.NormalizedKey,
		Name:               p.Name,
		Description:        p.Description,
		Type:               p.Type,
		Category:           p.Category,
		Address:            p.Address,
		Phone:              p.Phone,
		Email:              p.Email,
		Website:            p.Website,
		Lat:                p.Latitude,
		Lng:                p.Longitude,
		Rating:             p.Rating,
		VisitorCount:       p.VisitorCount,
		OpeningHours:       p.OpeningHours,
		SocialMedia:        p.SocialMedia,
		AISentiment:        string(p.AISentiment),
		AICategories:       p.AICategories,
		WeatherSuitability: p.WeatherSuitability,
		DataSources:        p.DataSources,
		VerifiedSource:     p.VerifiedSource,
		LastUpdated:        p.LastUpdated,
		WebScraped:         p.WebScraped,
	}
}
