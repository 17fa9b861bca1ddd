package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeData(); err != nil {
		return err
	}
	if err := c.normalizePoster(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeData() error {
	var err error
	if c.Data.MoviesPath, err = expandPath(strings.TrimSpace(c.Data.MoviesPath)); err != nil {
		return fmt.Errorf("data.movies_path: %w", err)
	}
	if c.Data.CreditsPath, err = expandPath(strings.TrimSpace(c.Data.CreditsPath)); err != nil {
		return fmt.Errorf("data.credits_path: %w", err)
	}
	if c.Data.SimilarityPath, err = expandPath(strings.TrimSpace(c.Data.SimilarityPath)); err != nil {
		return fmt.Errorf("data.similarity_path: %w", err)
	}
	return nil
}

func (c *Config) normalizePoster() error {
	p := &c.Poster
	p.Provider = strings.ToLower(strings.TrimSpace(p.Provider))
	if p.Provider == "" {
		p.Provider = ProviderNone
	}

	p.OMDbAPIKey = strings.TrimSpace(p.OMDbAPIKey)
	if p.OMDbAPIKey == "" {
		p.OMDbAPIKey = strings.TrimSpace(os.Getenv("OMDB_API_KEY"))
	}
	p.TMDBAPIKey = strings.TrimSpace(p.TMDBAPIKey)
	if p.TMDBAPIKey == "" {
		p.TMDBAPIKey = strings.TrimSpace(os.Getenv("TMDB_API_KEY"))
	}

	p.OMDbBaseURL = strings.TrimSpace(p.OMDbBaseURL)
	if p.OMDbBaseURL == "" {
		p.OMDbBaseURL = defaultOMDbBaseURL
	}
	p.TMDBBaseURL = strings.TrimRight(strings.TrimSpace(p.TMDBBaseURL), "/")
	if p.TMDBBaseURL == "" {
		p.TMDBBaseURL = defaultTMDBBaseURL
	}
	p.TMDBImageBaseURL = strings.TrimRight(strings.TrimSpace(p.TMDBImageBaseURL), "/")
	if p.TMDBImageBaseURL == "" {
		p.TMDBImageBaseURL = defaultTMDBImageBaseURL
	}
	p.TMDBLanguage = strings.TrimSpace(p.TMDBLanguage)
	p.PlaceholderURL = strings.TrimSpace(p.PlaceholderURL)
	if p.PlaceholderURL == "" {
		p.PlaceholderURL = defaultPlaceholderURL
	}

	var err error
	if p.CachePath, err = expandPath(strings.TrimSpace(p.CachePath)); err != nil {
		return fmt.Errorf("poster.cache_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
