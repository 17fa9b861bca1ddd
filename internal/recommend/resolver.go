package recommend

import (
	"log/slog"

	"cinematch/internal/catalog"
	"cinematch/internal/logging"
	"cinematch/internal/textutil"
)

// Catalog is the read-only catalog surface used for resolution and ranking.
type Catalog interface {
	Len() int
	FindByNormalizedTitle(norm string) (int, bool)
	AllNormalizedTitles() []string
	TitleAt(position int) (string, error)
	EntryAt(position int) (catalog.Entry, error)
	FindByActor(name string) []string
	FindByDirector(name string) []string
}

// Resolution is the outcome of classifying a query.
type Resolution struct {
	Kind Kind
	// Position is the anchor for KindMovie.
	Position int
	// Titles holds the person's titles for KindActor and KindDirector, or
	// the suggested titles for KindSuggestions.
	Titles []string
	// Name is the queried person name for KindActor and KindDirector.
	Name string
}

// Resolver classifies raw queries.
type Resolver struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewResolver creates a Resolver over c.
func NewResolver(c Catalog, logger *slog.Logger) *Resolver {
	return &Resolver{catalog: c, logger: logging.NewComponentLogger(logger, "resolver")}
}

// Resolve runs the automatic chain.
func (r *Resolver) Resolve(query string) Resolution {
	return r.ResolveAs(query, ModeAuto)
}

// ResolveAs classifies query under mode. Forced person modes never fall
// through to title matching or suggestions.
func (r *Resolver) ResolveAs(query string, mode Mode) Resolution {
	switch mode {
	case ModeActor:
		return r.person(query, KindActor)
	case ModeDirector:
		return r.person(query, KindDirector)
	}

	norm := textutil.Normalize(query)
	if pos, ok := r.catalog.FindByNormalizedTitle(norm); ok {
		return Resolution{Kind: KindMovie, Position: pos}
	}
	if res := r.person(query, KindActor); res.Kind != KindUnresolved {
		return res
	}
	if res := r.person(query, KindDirector); res.Kind != KindUnresolved {
		return res
	}
	if titles := r.suggest(norm); len(titles) > 0 {
		return Resolution{Kind: KindSuggestions, Titles: titles}
	}
	return Resolution{Kind: KindUnresolved}
}

func (r *Resolver) person(query string, kind Kind) Resolution {
	var titles []string
	if kind == KindActor {
		titles = r.catalog.FindByActor(query)
	} else {
		titles = r.catalog.FindByDirector(query)
	}
	if len(titles) == 0 {
		return Resolution{Kind: KindUnresolved}
	}
	return Resolution{Kind: kind, Titles: titles, Name: query}
}

// suggest maps close normalized titles back to the display title of their
// first catalog entry.
func (r *Resolver) suggest(norm string) []string {
	matches := textutil.CloseMatches(norm, r.catalog.AllNormalizedTitles(), textutil.DefaultMatchLimit, textutil.DefaultMatchCutoff)
	titles := make([]string, 0, len(matches))
	for _, m := range matches {
		title, err := r.catalog.TitleAt(m.Index)
		if err != nil {
			r.logger.Debug("suggestion position lookup failed", logging.Int("position", m.Index), logging.Error(err))
			continue
		}
		titles = append(titles, title)
	}
	return titles
}
