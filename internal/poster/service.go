package poster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"cinematch/internal/logging"
	"cinematch/internal/services"
)

const component = "poster"

// Options tunes a Service. Zero values fall back to usable defaults.
type Options struct {
	Placeholder       string
	Timeout           time.Duration
	MemoryEntries     int
	Store             *Store
	TTL               time.Duration
	RequestsPerSecond float64
	FailureThreshold  uint32
	Cooldown          time.Duration
	Logger            *slog.Logger
	Now               func() time.Time
}

// Service resolves posters through a provider and its caches.
type Service struct {
	provider    Provider
	placeholder string
	timeout     time.Duration
	memory      *lru.Cache[string, CachedPoster]
	store       *Store
	ttl         time.Duration
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[string]
	logger      *slog.Logger
	now         func() time.Time
}

// NewService wraps provider. A nil provider makes every lookup return the
// placeholder.
func NewService(provider Provider, opts Options) (*Service, error) {
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	if opts.MemoryEntries <= 0 {
		opts.MemoryEntries = 1024
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 5
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = 5
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = 30 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := logging.NewComponentLogger(opts.Logger, component)

	memory, err := lru.New[string, CachedPoster](opts.MemoryEntries)
	if err != nil {
		return nil, fmt.Errorf("create poster memory cache: %w", err)
	}

	name := "posters"
	if provider != nil {
		name = provider.Name()
	}
	threshold := opts.FailureThreshold
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     opts.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNoPoster)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("poster circuit state changed",
				logging.String("provider", name),
				logging.String("from", from.String()),
				logging.String("to", to.String()))
		},
	})

	burst := int(opts.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}

	if opts.Store != nil && opts.TTL > 0 {
		pruneExpired(opts.Store, opts.Now().Add(-opts.TTL), logger)
	}

	return &Service{
		provider:    provider,
		placeholder: opts.Placeholder,
		timeout:     opts.Timeout,
		memory:      memory,
		store:       opts.Store,
		ttl:         opts.TTL,
		limiter:     rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst),
		breaker:     breaker,
		logger:      logger,
		now:         opts.Now,
	}, nil
}

// Placeholder returns the URL used whenever no poster is available.
func (s *Service) Placeholder() string {
	return s.placeholder
}

// Enabled reports whether lookups reach a provider.
func (s *Service) Enabled() bool {
	return s.provider != nil
}

// Lookup returns a poster URL for title and year, or the placeholder. It
// never fails.
func (s *Service) Lookup(ctx context.Context, title, year string) string {
	title = strings.TrimSpace(title)
	year = strings.TrimSpace(year)
	if s.provider == nil || title == "" {
		return s.placeholder
	}
	key := s.cacheKey(title, year)
	logger := logging.WithContext(ctx, s.logger).With(logging.String("title", title))

	if cached, ok := s.memory.Get(key); ok {
		return s.resolve(cached)
	}
	if cached, ok := s.fromStore(ctx, key, logger); ok {
		s.memory.Add(key, cached)
		return s.resolve(cached)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.limiter.Wait(lookupCtx); err != nil {
		logger.Debug("poster lookup throttled", logging.Error(err))
		return s.placeholder
	}

	started := s.now()
	url, err := s.breaker.Execute(func() (string, error) {
		return s.provider.Poster(lookupCtx, title, year)
	})
	switch {
	case err == nil:
		s.remember(ctx, key, CachedPoster{URL: url, Found: true, FetchedAt: s.now()}, logger)
		logger.Debug("poster resolved", logging.Duration("latency", s.now().Sub(started)))
		return url
	case errors.Is(err, ErrNoPoster):
		s.remember(ctx, key, CachedPoster{Found: false, FetchedAt: s.now()}, logger)
		logger.Debug("no poster available", logging.Error(err))
		return s.placeholder
	default:
		wrapped := services.Wrap(services.ErrExternalService, component, s.provider.Name(), "lookup failed", err)
		logger.Debug("poster lookup failed, using placeholder", logging.Error(wrapped))
		return s.placeholder
	}
}

// StoredCount reports how many answers the persistent cache holds. ok is
// false when no cache is attached.
func (s *Service) StoredCount(ctx context.Context) (count int, ok bool, err error) {
	if s == nil || s.store == nil {
		return 0, false, nil
	}
	count, err = s.store.Count(ctx)
	if err != nil {
		return 0, true, err
	}
	return count, true, nil
}

// Close releases the persistent cache.
func (s *Service) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	return s.store.Close()
}

// pruneExpired drops answers fetched before cutoff. Failures are logged and
// ignored.
func pruneExpired(store *Store, cutoff time.Time, logger *slog.Logger) {
	removed, err := store.Prune(context.Background(), cutoff)
	if err != nil {
		logger.Debug("poster cache prune failed", logging.String("path", store.Path()), logging.Error(err))
		return
	}
	if removed > 0 {
		logger.Debug("poster cache pruned", logging.String("path", store.Path()), logging.Int("removed", int(removed)))
	}
}

func (s *Service) resolve(cached CachedPoster) string {
	if cached.Found && cached.URL != "" {
		return cached.URL
	}
	return s.placeholder
}

func (s *Service) cacheKey(title, year string) string {
	return s.provider.Name() + "|" + strings.ToLower(title) + "|" + year
}

func (s *Service) fromStore(ctx context.Context, key string, logger *slog.Logger) (CachedPoster, bool) {
	if s.store == nil || s.ttl <= 0 {
		return CachedPoster{}, false
	}
	cached, ok, err := s.store.Get(ctx, key, s.now().Add(-s.ttl))
	if err != nil {
		logger.Debug("poster cache read failed", logging.Error(err))
		return CachedPoster{}, false
	}
	return cached, ok
}

func (s *Service) remember(ctx context.Context, key string, cached CachedPoster, logger *slog.Logger) {
	s.memory.Add(key, cached)
	if s.store == nil || s.ttl <= 0 {
		return
	}
	if err := s.store.Put(ctx, key, cached); err != nil {
		logger.Debug("poster cache write failed", logging.Error(err))
	}
}
