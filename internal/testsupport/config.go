package testsupport

import (
	"path/filepath"
	"testing"

	"cinematch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test.
// Poster lookups are disabled unless an option enables a provider.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Data.MoviesPath = filepath.Join(base, "data", "movies.csv")
	cfgVal.Data.CreditsPath = filepath.Join(base, "data", "credits.csv")
	cfgVal.Data.SimilarityPath = filepath.Join(base, "data", "similarity.json")
	cfgVal.Poster.Provider = config.ProviderNone
	cfgVal.Poster.OMDbAPIKey = ""
	cfgVal.Poster.TMDBAPIKey = ""
	cfgVal.Poster.CachePath = filepath.Join(base, "cache", "posters.db")
	cfgVal.Poster.RequestsPerSecond = 1000
	cfgVal.Logging.Dir = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithOMDb enables the OMDb provider against baseURL.
func WithOMDb(baseURL, key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Poster.Provider = config.ProviderOMDb
		b.cfg.Poster.OMDbBaseURL = baseURL
		b.cfg.Poster.OMDbAPIKey = key
	}
}

// WithTMDB enables the TMDB provider against baseURL.
func WithTMDB(baseURL, key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Poster.Provider = config.ProviderTMDB
		b.cfg.Poster.TMDBBaseURL = baseURL
		b.cfg.Poster.TMDBAPIKey = key
	}
}

// WithoutPosterCache disables the sqlite poster cache.
func WithoutPosterCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Poster.CacheEnabled = false
	}
}

// WithLimits overrides the full and compact result sizes.
func WithLimits(limit, compact int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Recommend.Limit = limit
		b.cfg.Recommend.CompactLimit = compact
	}
}

// WithSimilarityPath points the similarity artifact at a file name inside the
// test data directory, letting tests pick the format by extension.
func WithSimilarityPath(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Data.SimilarityPath = filepath.Join(b.baseDir, "data", name)
	}
}
