package poster

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// ErrNoPoster reports that the provider answered but has no poster for the
// title. It is cached like a hit; transient errors are not.
var ErrNoPoster = errors.New("no poster available")

// Provider looks up a poster URL for a title and optional release year.
type Provider interface {
	Name() string
	Poster(ctx context.Context, title, year string) (string, error)
}

// Option configures a provider client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

func applyOptions(opts []Option) clientOptions {
	o := clientOptions{httpClient: &http.Client{Timeout: 10 * time.Second}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
