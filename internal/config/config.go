package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Data locates the static artifacts loaded once at startup.
type Data struct {
	MoviesPath     string `toml:"movies_path"`
	CreditsPath    string `toml:"credits_path"`
	SimilarityPath string `toml:"similarity_path"`
}

// Recommend contains result sizing for the two interfaces.
type Recommend struct {
	// Limit is k for the full interface.
	Limit int `toml:"limit"`
	// CompactLimit is k for the titles-only interface.
	CompactLimit int `toml:"compact_limit"`
}

// Poster contains configuration for the poster lookup collaborator.
type Poster struct {
	Provider                string  `toml:"provider"`
	OMDbAPIKey              string  `toml:"omdb_api_key"`
	OMDbBaseURL             string  `toml:"omdb_base_url"`
	TMDBAPIKey              string  `toml:"tmdb_api_key"`
	TMDBBaseURL             string  `toml:"tmdb_base_url"`
	TMDBImageBaseURL        string  `toml:"tmdb_image_base_url"`
	TMDBLanguage            string  `toml:"tmdb_language"`
	TimeoutSeconds          int     `toml:"timeout_seconds"`
	Concurrency             int     `toml:"concurrency"`
	RequestsPerSecond       float64 `toml:"requests_per_second"`
	PlaceholderURL          string  `toml:"placeholder_url"`
	MemoryCacheEntries      int     `toml:"memory_cache_entries"`
	CacheEnabled            bool    `toml:"cache_enabled"`
	CachePath               string  `toml:"cache_path"`
	CacheTTLHours           int     `toml:"cache_ttl_hours"`
	BreakerFailureThreshold int     `toml:"breaker_failure_threshold"`
	BreakerCooldownSeconds  int     `toml:"breaker_cooldown_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for cinematch.
//
// Configuration sections by subsystem:
//   - Data: catalog tables and the precomputed similarity artifact
//   - Recommend: k for the full and compact interfaces
//   - Poster: OMDb/TMDB poster lookup, caching, and resilience knobs
//   - Logging: log format, level, and optional file directory
type Config struct {
	Data      Data      `toml:"data"`
	Recommend Recommend `toml:"recommend"`
	Poster    Poster    `toml:"poster"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("cinematch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// PosterTimeout returns the per-lookup deadline for the poster collaborator.
func (c *Config) PosterTimeout() time.Duration {
	return time.Duration(c.Poster.TimeoutSeconds) * time.Second
}

// PosterCacheTTL returns how long cached poster answers stay valid.
func (c *Config) PosterCacheTTL() time.Duration {
	return time.Duration(c.Poster.CacheTTLHours) * time.Hour
}

// BreakerCooldown returns how long an open poster circuit stays open.
func (c *Config) BreakerCooldown() time.Duration {
	return time.Duration(c.Poster.BreakerCooldownSeconds) * time.Second
}

// PosterAPIKey returns the credential for the configured provider.
func (c *Config) PosterAPIKey() string {
	switch c.Poster.Provider {
	case ProviderOMDb:
		return c.Poster.OMDbAPIKey
	case ProviderTMDB:
		return c.Poster.TMDBAPIKey
	default:
		return ""
	}
}

const redactedValue = "********"

// Redacted returns a copy with API keys masked for display.
func (c *Config) Redacted() *Config {
	clone := *c
	if clone.Poster.OMDbAPIKey != "" {
		clone.Poster.OMDbAPIKey = redactedValue
	}
	if clone.Poster.TMDBAPIKey != "" {
		clone.Poster.TMDBAPIKey = redactedValue
	}
	return &clone
}

// Encode writes the effective configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
