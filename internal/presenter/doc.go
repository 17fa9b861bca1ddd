// Package presenter turns catalog entries into display records.
//
// Field formatting is pure. Poster URLs come from a PosterLookup that never
// fails; FormatAll runs those lookups concurrently with a bounded worker
// count and keeps the input order.
package presenter
