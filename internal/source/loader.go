// Package source discovers and parses the loosely-structured tourism CSV
// files that feed reconciliation. Column schemas vary per file; rows are
// surfaced as header-keyed maps and resolved downstream via alias lists.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"tshwane_places/internal/adapters/observability"
)

// DefaultSearchDirs mirrors the directory layout the upstream scrapers drop
// files into, relative to the base directory.
var DefaultSearchDirs = []string{".", "processed_data", "scraps", "Tryp_Thooe_Tourism", "cleaned_csvs"}

// Row is one CSV record keyed by its lowercased header.
type Row map[string]string

// Table is one parsed CSV file. Source is the file stem and becomes the
// data-source identifier on every record the table contributes to.
type Table struct {
	Source string
	Path   string
	Rows   []Row
}

type Loader struct {
	baseDir    string
	searchDirs []string
}

func NewLoader(baseDir string, searchDirs []string) *Loader {
	if baseDir == "" {
		baseDir = "."
	}
	if len(searchDirs) == 0 {
		searchDirs = DefaultSearchDirs
	}
	return &Loader{baseDir: baseDir, searchDirs: searchDirs}
}

// Discover walks the configured directories recursively and returns every CSV
// path found. A failing filesystem walk is an infrastructure error and aborts
// the run.
func (l *Loader) Discover() ([]string, error) {
	var paths []string
	seen := map[string]struct{}{}

	for _, dir := range l.searchDirs {
		root := filepath.Join(l.baseDir, dir)
		if _, err := os.Stat(root); err != nil {
			continue // configured dirs are optional
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".csv") {
				return nil
			}
			if _, ok := seen[path]; ok {
				return nil
			}
			seen[path] = struct{}{}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	log.Info().Int("files", len(paths)).Msg("csv discovery done")
	return paths, nil
}

// Load discovers and parses every CSV file. Unreadable or malformed files are
// logged at warning level and skipped; the batch never fails on bad data.
func (l *Loader) Load() ([]Table, error) {
	paths, err := l.Discover()
	if err != nil {
		return nil, err
	}

	tables := make([]Table, 0, len(paths))
	for _, path := range paths {
		t, err := ReadTable(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skipping unreadable csv")
			continue
		}
		observability.ObserveSourceRows(t.Source, len(t.Rows))
		log.Info().Str("file", path).Int("rows", len(t.Rows)).Msg("loaded csv")
		tables = append(tables, t)
	}
	return tables, nil
}

// ReadTable parses one CSV file into a Table. Headers are lowercased and
// trimmed; short rows are padded, long rows truncated to the header width.
func ReadTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return Table{}, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	t := Table{Source: stem(path), Path: path}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read row: %w", err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(rec) {
				row[col] = strings.TrimSpace(rec[i])
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
