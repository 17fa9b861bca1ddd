package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validatePoster(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateData() error {
	if strings.TrimSpace(c.Data.MoviesPath) == "" {
		return errors.New("data.movies_path must be set")
	}
	if strings.TrimSpace(c.Data.CreditsPath) == "" {
		return errors.New("data.credits_path must be set")
	}
	if strings.TrimSpace(c.Data.SimilarityPath) == "" {
		return errors.New("data.similarity_path must be set")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.Limit <= 0 {
		return errors.New("recommend.limit must be positive")
	}
	if c.Recommend.CompactLimit <= 0 {
		return errors.New("recommend.compact_limit must be positive")
	}
	return nil
}

func (c *Config) validatePoster() error {
	p := c.Poster
	switch p.Provider {
	case ProviderOMDb, ProviderTMDB, ProviderNone:
	default:
		return fmt.Errorf("poster.provider: unsupported value %q (want %s, %s or %s)", p.Provider, ProviderOMDb, ProviderTMDB, ProviderNone)
	}
	if err := ensurePositiveMap(map[string]int{
		"poster.timeout_seconds":           p.TimeoutSeconds,
		"poster.concurrency":               p.Concurrency,
		"poster.memory_cache_entries":      p.MemoryCacheEntries,
		"poster.breaker_failure_threshold": p.BreakerFailureThreshold,
		"poster.breaker_cooldown_seconds":  p.BreakerCooldownSeconds,
	}); err != nil {
		return err
	}
	if p.RequestsPerSecond <= 0 {
		return errors.New("poster.requests_per_second must be positive")
	}
	if p.CacheEnabled {
		if strings.TrimSpace(p.CachePath) == "" {
			return errors.New("poster.cache_path must be set when poster.cache_enabled is true")
		}
		if p.CacheTTLHours <= 0 {
			return errors.New("poster.cache_ttl_hours must be positive when poster.cache_enabled is true")
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
