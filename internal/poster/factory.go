package poster

import (
	"fmt"
	"log/slog"

	"cinematch/internal/config"
	"cinematch/internal/logging"
)

// DefaultPlaceholder is served when no poster can be found.
const DefaultPlaceholder = "https://via.placeholder.com/300x450/1a1a1a/ffffff?text=No+Poster+Available"

// NewProvider builds the provider named by cfg. It returns nil when the
// provider is disabled or has no credential.
func NewProvider(cfg *config.Config, opts ...Option) (Provider, error) {
	p := cfg.Poster
	switch p.Provider {
	case config.ProviderOMDb:
		if p.OMDbAPIKey == "" {
			return nil, nil
		}
		client, err := NewOMDbClient(p.OMDbAPIKey, p.OMDbBaseURL, opts...)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderTMDB:
		if p.TMDBAPIKey == "" {
			return nil, nil
		}
		client, err := NewTMDBClient(p.TMDBAPIKey, p.TMDBBaseURL, p.TMDBImageBaseURL, p.TMDBLanguage, opts...)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported poster provider %q", p.Provider)
	}
}

// NewServiceFromConfig assembles a Service from configuration. A cache that
// cannot be opened is logged and skipped.
func NewServiceFromConfig(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Service, error) {
	provider, err := NewProvider(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if provider == nil && cfg.Poster.Provider != config.ProviderNone {
		logging.WarnWithContext(logger, "poster provider has no api key, using placeholder posters", "poster_credentials_missing",
			logging.String("provider", cfg.Poster.Provider),
			logging.String(logging.FieldErrorHint, "set the provider api key in config or the environment"),
			logging.String(logging.FieldImpact, "all results show the placeholder poster"))
	}

	var store *Store
	if provider != nil && cfg.Poster.CacheEnabled {
		store, err = OpenStore(cfg.Poster.CachePath)
		if err != nil {
			logging.WarnWithContext(logger, "poster cache unavailable", "poster_cache_open_failed",
				logging.String("path", cfg.Poster.CachePath),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check permissions on poster.cache_path"),
				logging.String(logging.FieldImpact, "posters are fetched again on every run"))
			store = nil
		}
	}

	svc, err := NewService(provider, Options{
		Placeholder:       cfg.Poster.PlaceholderURL,
		Timeout:           cfg.PosterTimeout(),
		MemoryEntries:     cfg.Poster.MemoryCacheEntries,
		Store:             store,
		TTL:               cfg.PosterCacheTTL(),
		RequestsPerSecond: cfg.Poster.RequestsPerSecond,
		FailureThreshold:  uint32(cfg.Poster.BreakerFailureThreshold),
		Cooldown:          cfg.BreakerCooldown(),
		Logger:            logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return svc, nil
}
