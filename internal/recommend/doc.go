// Package recommend resolves free-text queries against the catalog and ranks
// related movies.
//
// Resolution tries, in order: an exact normalized title, an actor name
// substring, a director name substring, and finally fuzzy title suggestions.
// A title match always wins over a person whose name collides with it, and an
// actor match wins over a director match. Callers may also force the actor or
// director lookup.
//
// The Ranker orders movies by the anchor's similarity row, excluding the
// anchor by position, or passes through the titles found for a person. The
// Engine runs resolve, rank and format for one request and never fails for a
// non-blank query and positive k.
package recommend
