// Package textutil provides the text canonicalisation and fuzzy matching
// primitives used to resolve free-text queries against catalog titles.
//
// The primary use cases are:
//   - Normalizing titles and queries to a lowercase, ASCII alphanumeric form
//     so equality matching ignores case, spacing, and punctuation
//   - Scoring two normalized strings with a matching-block sequence ratio
//     (2*M/T) and selecting the closest candidates above a cutoff
//   - Truncating display text on rune boundaries
//
// Every function is pure and safe for concurrent use.
package textutil
