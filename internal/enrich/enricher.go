// Package enrich back-fills reconciled place records from their live
// websites: bounded-parallel fetches, regex/DOM extraction, and a strict
// never-overwrite merge back on the coordinating goroutine.
package enrich

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"tshwane_places/internal/adapters/observability"
	"tshwane_places/internal/domain"
)

const DefaultWorkers = 5

type Enricher struct {
	fetcher    domain.PageFetcher
	searchBase string
	workers    int64
	now        func() time.Time
}

type Option func(*Enricher)

// WithWorkers bounds fetch parallelism (default 5).
func WithWorkers(n int) Option {
	return func(e *Enricher) {
		if n > 0 {
			e.workers = int64(n)
		}
	}
}

// WithSearchBase points website discovery at a different search endpoint;
// tests use it to swap in a local server.
func WithSearchBase(base string) Option {
	return func(e *Enricher) {
		if base != "" {
			e.searchBase = base
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Enricher) { e.now = now }
}

func New(f domain.PageFetcher, opts ...Option) *Enricher {
	e := &Enricher{
		fetcher:    f,
		searchBase: defaultSearchBase,
		workers:    DefaultWorkers,
		now:        time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// ShouldEnrich is the cost-control predicate: only records that carry a
// website or were mentioned by more than one source are worth a fetch.
func ShouldEnrich(p *domain.PlaceRecord) bool {
	return p.Website != "" || len(p.DataSources) > 1
}

type result struct {
	key     string
	website string
	data    PageData
	ok      bool
}

// EnrichAll fetches candidate websites with a bounded worker pool and merges
// results back one at a time on the calling goroutine. Workers only touch
// data captured before launch, so the record map needs no locking.
func (e *Enricher) EnrichAll(ctx context.Context, records map[string]*domain.PlaceRecord) {
	if e.fetcher == nil {
		return
	}

	sem := semaphore.NewWeighted(e.workers)
	results := make(chan result)
	var wg sync.WaitGroup

	go func() {
		defer close(results)
		for key, rec := range records {
			if !ShouldEnrich(rec) {
				observability.ObserveEnrich("skipped")
				continue
			}
			if err := sem.Acquire(ctx, 1); err != nil {
				log.Warn().Err(err).Msg("enrichment cancelled")
				break
			}
			wg.Add(1)
			go func(key, name, website string) {
				defer wg.Done()
				defer sem.Release(1)
				results <- e.enrichOne(ctx, key, name, website)
			}(key, rec.Name, rec.Website)
		}
		wg.Wait()
	}()

	for res := range results {
		if !res.ok {
			continue
		}
		e.merge(records[res.key], res)
	}
}

// enrichOne runs entirely inside a worker: discover a website if needed,
// fetch it, extract fields. Any failure is logged and reported as not-ok; it
// never disturbs the batch.
func (e *Enricher) enrichOne(ctx context.Context, key, name, website string) result {
	if website == "" {
		website = e.discoverWebsite(ctx, name)
	}
	if website == "" {
		observability.ObserveEnrich("skipped")
		return result{key: key}
	}

	body, err := e.fetcher.FetchPage(ctx, website)
	if err != nil {
		observability.ObserveEnrich("failed")
		log.Warn().Err(err).Str("place", name).Str("url", website).Msg("enrichment fetch failed")
		return result{key: key}
	}

	data, err := Extract(body)
	if err != nil {
		observability.ObserveEnrich("failed")
		log.Warn().Err(err).Str("place", name).Msg("enrichment parse failed")
		return result{key: key}
	}

	observability.ObserveEnrich("ok")
	return result{key: key, website: website, data: data, ok: true}
}

// merge back-fills only empty fields; reconciled data always wins over
// scraped data.
func (e *Enricher) merge(rec *domain.PlaceRecord, res result) {
	d := res.data
	if rec.Website == "" {
		rec.Website = res.website
	}
	if rec.Phone == "" {
		rec.Phone = d.Phone
	}
	if rec.Email == "" {
		rec.Email = d.Email
	}
	if rec.Address == "" {
		rec.Address = d.Address
	}
	if rec.Description == "" {
		rec.Description = d.Description
	}
	if rec.OpeningHours == "" {
		rec.OpeningHours = d.OpeningHours
	}
	if rec.SocialMedia == "" {
		rec.SocialMedia = d.SocialMedia
	}
	rec.WebScraped = d.Map()
	rec.VerifiedSource = true
	rec.LastUpdated = e.now().UTC().Format(time.RFC3339)
}
