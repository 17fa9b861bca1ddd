package recommend

import (
	"log/slog"
	"math"
	"sort"

	"cinematch/internal/logging"
	"cinematch/internal/textutil"
)

// Scores is positional access to similarity rows.
type Scores interface {
	Size() int
	RowAt(position int) ([]float64, error)
}

// Ranker orders catalog positions for presentation.
type Ranker struct {
	catalog Catalog
	scores  Scores
	logger  *slog.Logger
}

// NewRanker creates a Ranker.
func NewRanker(c Catalog, scores Scores, logger *slog.Logger) *Ranker {
	return &Ranker{catalog: c, scores: scores, logger: logging.NewComponentLogger(logger, "ranker")}
}

type scored struct {
	position int
	score    float64
}

// Similar returns up to k positions ordered by descending similarity to
// anchor. Equal scores keep ascending position order, NaN scores sort last,
// and the anchor itself is always excluded.
func (r *Ranker) Similar(anchor, k int) ([]int, error) {
	row, err := r.scores.RowAt(anchor)
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		return []int{}, nil
	}

	candidates := make([]scored, 0, len(row))
	for pos, score := range row {
		if pos == anchor {
			continue
		}
		candidates = append(candidates, scored{position: pos, score: score})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return ranksAbove(candidates[i].score, candidates[j].score)
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	positions := make([]int, len(candidates))
	for i, c := range candidates {
		positions[i] = c.position
	}
	return positions, nil
}

func ranksAbove(a, b float64) bool {
	switch {
	case math.IsNaN(a):
		return false
	case math.IsNaN(b):
		return true
	default:
		return a > b
	}
}

// FromTitles resolves the first k titles back to positions. A title that no
// longer resolves is logged and skipped.
func (r *Ranker) FromTitles(titles []string, k int) []int {
	if k <= 0 {
		return []int{}
	}
	if len(titles) > k {
		titles = titles[:k]
	}
	positions := make([]int, 0, len(titles))
	for _, title := range titles {
		pos, ok := r.catalog.FindByNormalizedTitle(textutil.Normalize(title))
		if !ok {
			logging.WarnWithContext(r.logger, "catalog title did not resolve to a position", "ranker_title_missing",
				logging.String("title", title),
				logging.String(logging.FieldErrorHint, "catalog indexes are inconsistent; reload the data files"),
				logging.String(logging.FieldImpact, "the title is left out of the results"))
			continue
		}
		positions = append(positions, pos)
	}
	return positions
}
