package textutil

import (
	"sort"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	// DefaultMatchLimit caps the number of fuzzy suggestions.
	DefaultMatchLimit = 5
	// DefaultMatchCutoff is the minimum ratio a candidate needs to be suggested.
	DefaultMatchCutoff = 0.6
)

// Match is a candidate that scored at or above the cutoff.
type Match struct {
	// Index is the candidate's offset in the slice passed to CloseMatches.
	Index     int
	Candidate string
	Score     float64
}

// Ratio returns the sequence similarity 2*M/T of a and b, where M is the total
// size of the matching blocks and T the combined length. Two empty strings
// score 1.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(splitChars(a), splitChars(b)).Ratio()
}

// CloseMatches scores every candidate against query and returns up to limit
// matches whose ratio is >= cutoff, best first. Equal scores keep candidate
// order. Repeated candidate strings are scored once, at their first index.
func CloseMatches(query string, candidates []string, limit int, cutoff float64) []Match {
	if limit <= 0 || len(candidates) == 0 {
		return nil
	}

	// The query is sequence two so its index is built once for every candidate.
	matcher := difflib.NewMatcher(nil, splitChars(query))
	seen := make(map[string]struct{}, len(candidates))
	var matches []Match
	for i, candidate := range candidates {
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}

		matcher.SetSeq1(splitChars(candidate))
		if matcher.RealQuickRatio() < cutoff || matcher.QuickRatio() < cutoff {
			continue
		}
		score := matcher.Ratio()
		if score < cutoff {
			continue
		}
		matches = append(matches, Match{Index: i, Candidate: candidate, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func splitChars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
