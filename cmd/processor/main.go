package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"tshwane_places/internal/adapters/observability"
	"tshwane_places/internal/app"
	"tshwane_places/internal/classify"
	"tshwane_places/internal/domain"
	"tshwane_places/internal/enrich"
	"tshwane_places/internal/shared"
	"tshwane_places/internal/source"
	mysqlrepo "tshwane_places/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	log.Info().
		Str("base_dir", cfg.BaseDir).
		Str("output_dir", cfg.OutputDir).
		Int("workers", cfg.Workers).
		Msg("processor starting")

	loader := source.NewLoader(cfg.BaseDir, cfg.SearchDirs)

	fetcher := enrich.NewFetcher(cfg.FetchTimeout, cfg.FetchDelay)
	enrichOpts := []enrich.Option{enrich.WithWorkers(cfg.Workers)}
	if cfg.SearchBase != "" {
		enrichOpts = append(enrichOpts, enrich.WithSearchBase(cfg.SearchBase))
	}
	enricher := enrich.New(fetcher, enrichOpts...)

	var tiers []domain.Classifier
	if cfg.ClassifierURL != "" {
		tiers = append(tiers, classify.NewZeroShot(cfg.ClassifierURL, cfg.ClassifierKey))
	}
	chain := classify.NewChain(tiers...)

	opts := []app.PipelineOption{app.WithEnricher(enricher)}

	// The repository sink is optional; without a DSN the CSV output stands alone.
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("db ping ok")
		opts = append(opts, app.WithRepository(mysqlrepo.New(db)))
	}

	p := app.NewPipeline(loader, chain, cfg.OutputDir, opts...)
	summary, err := p.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("processing run failed")
	}

	log.Info().
		Int("places", summary.TotalPlaces).
		Int("with_coordinates", summary.PlacesWithCoordinates).
		Int("with_websites", summary.PlacesWithWebsites).
		Str("output", summary.OutputDirectory).
		Msg("processing completed")
}
