package config

// Poster provider names accepted in poster.provider.
const (
	ProviderOMDb = "omdb"
	ProviderTMDB = "tmdb"
	ProviderNone = "none"
)

const (
	defaultConfigPath              = "~/.config/cinematch/config.toml"
	defaultMoviesPath              = "~/.local/share/cinematch/tmdb_5000_movies.csv"
	defaultCreditsPath             = "~/.local/share/cinematch/tmdb_5000_credits.csv"
	defaultSimilarityPath          = "~/.local/share/cinematch/similarity.npy"
	defaultLimit                   = 25
	defaultCompactLimit            = 10
	defaultOMDbBaseURL             = "http://www.omdbapi.com/"
	defaultTMDBBaseURL             = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL        = "https://image.tmdb.org/t/p/w500"
	defaultTMDBLanguage            = "en-US"
	defaultPosterTimeoutSeconds    = 3
	defaultPosterConcurrency       = 4
	defaultPosterRequestsPerSecond = 5
	defaultPlaceholderURL          = "https://via.placeholder.com/300x450/1a1a1a/ffffff?text=No+Poster+Available"
	defaultMemoryCacheEntries      = 1024
	defaultPosterCachePath         = "~/.cache/cinematch/posters.db"
	defaultPosterCacheTTLHours     = 720
	defaultBreakerFailureThreshold = 5
	defaultBreakerCooldownSeconds  = 30
	defaultLogFormat               = "console"
	defaultLogLevel                = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Data: Data{
			MoviesPath:     defaultMoviesPath,
			CreditsPath:    defaultCreditsPath,
			SimilarityPath: defaultSimilarityPath,
		},
		Recommend: Recommend{
			Limit:        defaultLimit,
			CompactLimit: defaultCompactLimit,
		},
		Poster: Poster{
			Provider:                ProviderOMDb,
			OMDbBaseURL:             defaultOMDbBaseURL,
			TMDBBaseURL:             defaultTMDBBaseURL,
			TMDBImageBaseURL:        defaultTMDBImageBaseURL,
			TMDBLanguage:            defaultTMDBLanguage,
			TimeoutSeconds:          defaultPosterTimeoutSeconds,
			Concurrency:             defaultPosterConcurrency,
			RequestsPerSecond:       defaultPosterRequestsPerSecond,
			PlaceholderURL:          defaultPlaceholderURL,
			MemoryCacheEntries:      defaultMemoryCacheEntries,
			CacheEnabled:            true,
			CachePath:               defaultPosterCachePath,
			CacheTTLHours:           defaultPosterCacheTTLHours,
			BreakerFailureThreshold: defaultBreakerFailureThreshold,
			BreakerCooldownSeconds:  defaultBreakerCooldownSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
