// Package app wires the processing stages together and serves read queries
// for the HTTP API.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tshwane_places/internal/adapters/observability"
	"tshwane_places/internal/classify"
	"tshwane_places/internal/domain"
	"tshwane_places/internal/enrich"
	"tshwane_places/internal/output"
	"tshwane_places/internal/reconcile"
	"tshwane_places/internal/source"
)

// Pipeline runs one batch: discover CSVs, reconcile, enrich, classify, write.
// The repository sink is optional; the filesystem output is canonical.
type Pipeline struct {
	loader     *source.Loader
	enricher   *enrich.Enricher
	classifier domain.Classifier
	writer     *output.Writer
	repo       domain.PlaceRepository
	outputDir  string
	now        func() time.Time
}

type PipelineOption func(*Pipeline)

// WithEnricher enables the website enrichment stage.
func WithEnricher(e *enrich.Enricher) PipelineOption {
	return func(p *Pipeline) { p.enricher = e }
}

// WithRepository mirrors the final records into a persistent store for the
// read API. Upsert failures are logged and skipped.
func WithRepository(r domain.PlaceRepository) PipelineOption {
	return func(p *Pipeline) { p.repo = r }
}

func WithPipelineClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) { p.now = now }
}

func NewPipeline(loader *source.Loader, classifier domain.Classifier, outputDir string, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		loader:     loader,
		classifier: classifier,
		writer:     output.NewWriter(outputDir),
		outputDir:  outputDir,
		now:        time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run executes the full batch and returns the summary report. Bad rows and
// failed enrichments never fail the run; only infrastructure errors (walk,
// output I/O) do.
func (p *Pipeline) Run(ctx context.Context) (domain.Summary, error) {
	tables, err := p.loader.Load()
	if err != nil {
		return domain.Summary{}, err
	}

	rc := reconcile.New()
	for _, t := range tables {
		rc.AddTable(t)
	}
	records := rc.Records()
	observability.PlacesReconciled.Set(float64(len(records)))
	log.Info().
		Int("tables", len(tables)).
		Int("places", len(records)).
		Int("dropped_rows", rc.Dropped()).
		Msg("reconciliation done")

	if p.enricher != nil {
		p.enricher.EnrichAll(ctx, records)
	}

	ordered := rc.Ordered()
	p.classifyAll(ctx, ordered)

	if err := p.writer.WriteAll(ordered); err != nil {
		return domain.Summary{}, err
	}
	summary := output.BuildSummary(ordered, p.outputDir, p.now())
	if err := p.writer.WriteSummary(summary); err != nil {
		return domain.Summary{}, err
	}

	p.persist(ctx, ordered)
	return summary, nil
}

// classifyAll tags every record. The classifier chain never errors, but the
// guard stays in case a caller wires a bare model without the rule tier.
func (p *Pipeline) classifyAll(ctx context.Context, records []*domain.PlaceRecord) {
	for _, rec := range records {
		text := classifiableText(rec)
		res, err := p.classifier.Classify(ctx, text)
		if err != nil {
			log.Warn().Err(err).Str("place", rec.Name).Msg("classification failed")
		} else {
			rec.AICategories = res.Categories
			rec.AISentiment = res.Sentiment
		}
		rec.WeatherSuitability = classify.WeatherSuitability(text)
	}
}

// classifiableText joins the descriptive fields the taggers look at. Name is
// always included so places without descriptions still get weather scores.
func classifiableText(rec *domain.PlaceRecord) string {
	parts := []string{rec.Name, rec.Description, rec.Type, rec.Category}
	return strings.Join(parts, " ")
}

func (p *Pipeline) persist(ctx context.Context, records []*domain.PlaceRecord) {
	if p.repo == nil {
		return
	}
	failed := 0
	for _, rec := range records {
		if err := p.repo.UpsertPlace(ctx, *rec); err != nil {
			failed++
			log.Error().Err(err).Str("place", rec.Name).Msg("place upsert failed")
		}
	}
	log.Info().Int("upserted", len(records)-failed).Int("failed", failed).Msg("repository sync done")
}
