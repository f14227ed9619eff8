// Package output serializes reconciled records: one CSV per place, sharded
// by type, plus a JSON summary report. Re-running over identical input must
// produce byte-identical rows apart from last_updated.
package output

import (
	"crypto/md5"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tshwane_places/internal/domain"
)

// Columns is the fixed output order; consumers key on position as well as name.
var Columns = []string{
	"name", "description", "type", "category", "lat", "lng", "address",
	"phone", "website", "email", "rating", "visitor_count", "opening_hours",
	"entrance_fee", "accessibility", "best_time", "visit_duration",
	"highlights", "facilities", "special_features", "seasonal_info",
	"photography_allowed", "social_media", "last_updated", "data_sources",
	"web_scraped_data",
}

const maxFileName = 50

var (
	unsafeChars = regexp.MustCompile(`[^\w\s-]`)
	separators  = regexp.MustCompile(`[-\s]+`)
)

// SafeFileName derives a filesystem-safe stem from a place name. Names longer
// than 50 characters get an 8-hex MD5 suffix so truncated collisions stay
// unique.
func SafeFileName(name string) string {
	safe := unsafeChars.ReplaceAllString(name, "")
	safe = separators.ReplaceAllString(safe, "_")
	if len(safe) > maxFileName {
		safe = safe[:maxFileName]
	}
	if len(name) > maxFileName {
		sum := md5.Sum([]byte(name))
		safe = safe + "_" + hex.EncodeToString(sum[:])[:8]
	}
	return safe
}

type Writer struct {
	dir string
	now func() time.Time
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// WithClock fixes the timestamp source; tests use it for reproducible rows.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// WriteAll writes one CSV per record under dir/<type>/. Only directory
// creation and file I/O failures are errors; they are infrastructure problems
// and abort the run.
func (w *Writer) WriteAll(records []*domain.PlaceRecord) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, rec := range records {
		shard := filepath.Join(w.dir, SafeFileName(rec.ShardType()))
		if err := os.MkdirAll(shard, 0o755); err != nil {
			return fmt.Errorf("create shard dir: %w", err)
		}
		path := filepath.Join(shard, SafeFileName(rec.Name)+".csv")
		if err := w.writeRecord(path, rec); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	log.Info().Int("records", len(records)).Str("dir", w.dir).Msg("wrote place csv files")
	return nil
}

func (w *Writer) writeRecord(path string, rec *domain.PlaceRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	if err := cw.Write(w.row(rec)); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func (w *Writer) row(rec *domain.PlaceRecord) []string {
	scraped, _ := json.Marshal(rec.WebScraped)
	lastUpdated := rec.LastUpdated
	if lastUpdated == "" {
		lastUpdated = w.now().UTC().Format(time.RFC3339)
	}
	return []string{
		rec.Name,
		rec.Description,
		rec.Type,
		rec.Category,
		floatCell(rec.Latitude),
		floatCell(rec.Longitude),
		rec.Address,
		rec.Phone,
		rec.Website,
		rec.Email,
		floatCell(rec.Rating),
		intCell(rec.VisitorCount),
		rec.OpeningHours,
		rec.EntranceFee,
		rec.Accessibility,
		rec.BestTime,
		rec.VisitDuration,
		rec.Highlights,
		rec.Facilities,
		rec.SpecialFeatures,
		rec.SeasonalInfo,
		rec.PhotographyAllowed,
		rec.SocialMedia,
		lastUpdated,
		strings.Join(rec.DataSources, ","),
		string(scraped),
	}
}

func floatCell(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func intCell(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

// BuildSummary computes the aggregate report over the final record set.
func BuildSummary(records []*domain.PlaceRecord, outputDir string, now time.Time) domain.Summary {
	s := domain.Summary{
		ProcessingDate:     now.UTC().Format(time.RFC3339),
		TotalPlaces:        len(records),
		TypeDistribution:   map[string]int{},
		SourceDistribution: map[string]int{},
		OutputDirectory:    outputDir,
	}
	for _, rec := range records {
		if rec.HasCoordinates() {
			s.PlacesWithCoordinates++
		}
		if rec.Website != "" {
			s.PlacesWithWebsites++
		}
		if rec.Phone != "" {
			s.PlacesWithPhone++
		}
		if rec.Email != "" {
			s.PlacesWithEmail++
		}
		s.TypeDistribution[rec.ShardType()]++
		// repeats in data_sources are counted: mentions, not distinct sources
		for _, src := range rec.DataSources {
			s.SourceDistribution[src]++
		}
	}
	return s
}

// WriteSummary writes the JSON report next to the per-place shards.
func (w *Writer) WriteSummary(s domain.Summary) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	path := filepath.Join(w.dir, "processing_summary.json")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	log.Info().Str("path", path).Msg("wrote summary report")
	return nil
}
