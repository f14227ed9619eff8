package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when a key has no record.
var ErrNotFound = errors.New("not found")

// PlaceRepository is the optional persistent sink behind the read API. The
// pipeline's canonical output stays on the filesystem; the repository exists
// so the dashboard endpoints can query reconciled data without re-reading CSVs.
type PlaceRepository interface {
	UpsertPlace(ctx context.Context, p PlaceRecord) error
	GetPlace(ctx context.Context, key string) (PlaceRecord, error)
	ListPlaces(ctx context.Context, q PlacesQuery) ([]PlaceRecord, error)
}

type PlacesQuery struct {
	Type  string
	Limit int
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// PageFetcher retrieves one HTML page. Implementations own politeness pacing
// and per-call timeouts.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

// Classification is the shared result vocabulary for every classifier tier.
type Classification struct {
	Categories []string
	Sentiment  Sentiment
}

// Classifier assigns categories and a sentiment label to free text. A failing
// or absent implementation must never be fatal: callers chain classifiers and
// fall through to the rule-based default.
type Classifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}
