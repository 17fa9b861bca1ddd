package poster

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

type tmdbResult struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	PosterPath string `json:"poster_path"`
}

type tmdbResponse struct {
	Page    int          `json:"page"`
	Results []tmdbResult `json:"results"`
}

// TMDBClient fetches posters through the TMDB movie search endpoint.
type TMDBClient struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
	httpClient   *http.Client
}

var _ Provider = (*TMDBClient)(nil)

// NewTMDBClient creates a TMDB client. Poster paths are joined to imageBaseURL.
func NewTMDBClient(apiKey, baseURL, imageBaseURL, language string, opts ...Option) (*TMDBClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	imageBaseURL = strings.TrimSpace(imageBaseURL)
	if imageBaseURL == "" {
		return nil, errors.New("tmdb image base url required")
	}
	o := applyOptions(opts)
	return &TMDBClient{
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
		language:     strings.TrimSpace(language),
		httpClient:   o.httpClient,
	}, nil
}

// Name identifies the provider in cache keys and logs.
func (c *TMDBClient) Name() string { return "tmdb" }

// Poster returns the first search result that carries a poster path.
func (c *TMDBClient) Poster(ctx context.Context, title, year string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errors.New("query must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search/movie")
	if err != nil {
		return "", fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("query", title)
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	if y, err := strconv.Atoi(strings.TrimSpace(year)); err == nil && y > 0 {
		params.Set("primary_release_year", strconv.Itoa(y))
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return "", fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tmdb search returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload tmdbResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode tmdb response: %w", err)
	}
	for _, result := range payload.Results {
		if path := strings.TrimSpace(result.PosterPath); path != "" {
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}
			return c.imageBaseURL + path, nil
		}
	}
	return "", ErrNoPoster
}
