package poster

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

type omdbResponse struct {
	Response string `json:"Response"`
	Poster   string `json:"Poster"`
	Error    string `json:"Error"`
}

// OMDbClient fetches posters from the OMDb title endpoint.
type OMDbClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ Provider = (*OMDbClient)(nil)

// NewOMDbClient creates an OMDb client.
func NewOMDbClient(apiKey, baseURL string, opts ...Option) (*OMDbClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("omdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("omdb base url required")
	}
	o := applyOptions(opts)
	return &OMDbClient{apiKey: apiKey, baseURL: baseURL, httpClient: o.httpClient}, nil
}

// Name identifies the provider in cache keys and logs.
func (c *OMDbClient) Name() string { return "omdb" }

// Poster looks up title, narrowed by year when one is given.
func (c *OMDbClient) Poster(ctx context.Context, title, year string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errors.New("title must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse omdb url: %w", err)
	}
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	params.Set("type", "movie")
	if year = strings.TrimSpace(year); year != "" {
		params.Set("y", year)
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
		return "", fmt.Errorf("omdb lookup returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload omdbResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode omdb response: %w", err)
	}
	if payload.Response != "True" {
		if payload.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrNoPoster, payload.Error)
		}
		return "", ErrNoPoster
	}
	poster := strings.TrimSpace(payload.Poster)
	if poster == "" || poster == "N/A" {
		return "", ErrNoPoster
	}
	return poster, nil
}
