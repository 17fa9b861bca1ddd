// Package services defines shared error markers and context helpers used
// across the recommendation pipeline and its external integrations.
//
// Key responsibilities:
//   - Sentinel markers (ErrLoad, ErrNotFound, ErrExternalService, ...) plus
//     the Wrap helper so callers can classify failures with errors.Is while
//     still reading a component/operation trail in the message.
//   - Context helpers that stamp correlation identifiers and query text so
//     logging can tag every line produced for a single request.
//
// Load-time failures are fatal to startup; lookups report ErrNotFound locally;
// external service failures are absorbed by the poster collaborator and never
// reach the caller.
package services
