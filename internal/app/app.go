package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cinematch/internal/catalog"
	"cinematch/internal/config"
	"cinematch/internal/logging"
	"cinematch/internal/poster"
	"cinematch/internal/presenter"
	"cinematch/internal/recommend"
	"cinematch/internal/services"
	"cinematch/internal/similarity"
)

// App holds the loaded artifacts and the services built on them.
type App struct {
	Config    *config.Config
	Catalog   *catalog.Index
	Scores    *similarity.Store
	Posters   *poster.Service
	Formatter *presenter.Formatter
	Engine    *recommend.Engine
	logger    *slog.Logger
}

// Option adjusts how Open builds the app.
type Option func(*openOptions)

type openOptions struct {
	posterOpts []poster.Option
	noPosters  bool
}

// WithPosterOptions passes client options to the poster provider.
func WithPosterOptions(opts ...poster.Option) Option {
	return func(o *openOptions) {
		o.posterOpts = append(o.posterOpts, opts...)
	}
}

// WithoutPosters skips building a poster provider.
func WithoutPosters() Option {
	return func(o *openOptions) {
		o.noPosters = true
	}
}

// Open loads the catalog and similarity artifacts, checks they line up, and
// wires the engine. Failures are fatal load errors.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "app", "open", "configuration is required", nil)
	}
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}
	logger = logging.NewComponentLogger(logger, "app")

	started := time.Now()
	idx, err := catalog.LoadFiles(cfg.Data.MoviesPath, cfg.Data.CreditsPath)
	if err != nil {
		return nil, err
	}
	stats := idx.Stats()
	logger.Info("catalog loaded",
		logging.Int("entries", stats.Entries),
		logging.Int("actors", stats.Actors),
		logging.Int("directors", stats.Directors),
		logging.Int("uncredited", stats.Uncredited),
		logging.Duration("elapsed", time.Since(started)))

	started = time.Now()
	scores, err := similarity.Load(cfg.Data.SimilarityPath)
	if err != nil {
		return nil, err
	}
	if err := scores.Validate(idx.Len()); err != nil {
		return nil, err
	}
	logger.Info("similarity loaded",
		logging.Int("rows", scores.Size()),
		logging.Duration("elapsed", time.Since(started)))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("open app: %w", err)
	}

	var posters *poster.Service
	if o.noPosters {
		posters, err = poster.NewService(nil, poster.Options{Placeholder: cfg.Poster.PlaceholderURL, Logger: logger})
	} else {
		posters, err = poster.NewServiceFromConfig(cfg, logger, o.posterOpts...)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "app", "open", "poster service", err)
	}

	logger.Info("poster service ready",
		logging.String("provider", cfg.Poster.Provider),
		logging.Bool("enabled", posters.Enabled()),
		logging.Float64("requests_per_second", cfg.Poster.RequestsPerSecond))

	formatter := presenter.New(posters, posters.Placeholder(),
		presenter.WithConcurrency(cfg.Poster.Concurrency),
		presenter.WithLogger(logger))

	return &App{
		Config:    cfg,
		Catalog:   idx,
		Scores:    scores,
		Posters:   posters,
		Formatter: formatter,
		Engine:    recommend.NewEngine(idx, scores, formatter, logger),
		logger:    logger,
	}, nil
}

// Search runs a request with k taken from configuration when unset. Compact
// requests use the compact limit and skip formatting.
func (a *App) Search(ctx context.Context, req recommend.Request, compact bool) (*recommend.Result, error) {
	if req.K == 0 {
		if compact {
			req.K = a.Config.Recommend.CompactLimit
		} else {
			req.K = a.Config.Recommend.Limit
		}
	}
	if compact {
		req.TitlesOnly = true
	}
	return a.Engine.Search(ctx, req)
}

// Close releases the poster cache.
func (a *App) Close() error {
	if a == nil || a.Posters == nil {
		return nil
	}
	return a.Posters.Close()
}
