// Package poster resolves poster image URLs for catalog movies.
//
// Providers talk to OMDb or TMDB over HTTP and report either a URL,
// ErrNoPoster when the service definitively has none, or a transient error.
// Service wraps a provider with an in-memory LRU, an optional sqlite cache
// with a TTL, a request rate limiter, a circuit breaker, and a per-lookup
// deadline. Service.Lookup never fails: every miss resolves to the configured
// placeholder URL.
package poster
