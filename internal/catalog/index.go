package catalog

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cinematch/internal/services"
	"cinematch/internal/textutil"
)

// Index is the joined catalog plus title, actor and director lookups.
type Index struct {
	entries      []Entry
	normalized   []string
	byNormalized map[string]int
	actors       *personIndex
	directors    *personIndex
	uncredited   int
}

// Stats summarizes an index for inspection.
type Stats struct {
	Entries    int
	Actors     int
	Directors  int
	Uncredited int
}

// Build joins movies with credits by exact title (left join, first credit row
// per title wins) and builds every lookup. The result keeps the movie order,
// so entry positions line up with the similarity rows.
func Build(movies []Movie, credits []Credit) *Index {
	byTitle := make(map[string]Credit, len(credits))
	for _, credit := range credits {
		if _, ok := byTitle[credit.Title]; !ok {
			byTitle[credit.Title] = credit
		}
	}

	idx := &Index{
		entries:      make([]Entry, 0, len(movies)),
		normalized:   make([]string, 0, len(movies)),
		byNormalized: make(map[string]int, len(movies)),
		actors:       newPersonIndex(),
		directors:    newPersonIndex(),
	}

	for pos, movie := range movies {
		entry := Entry{
			Position:        pos,
			Title:           movie.Title,
			NormalizedTitle: textutil.Normalize(movie.Title),
			ReleaseDate:     movie.ReleaseDate,
			VoteAverage:     movie.VoteAverage,
			Overview:        movie.Overview,
			Director:        UnknownDirector,
			Cast:            []string{},
		}
		if credit, ok := byTitle[movie.Title]; ok {
			entry.Director = ExtractDirector(credit.Crew)
			entry.Cast = ExtractCast(credit.Cast, MaxCast)
		} else {
			idx.uncredited++
		}

		idx.entries = append(idx.entries, entry)
		idx.normalized = append(idx.normalized, entry.NormalizedTitle)
		if _, ok := idx.byNormalized[entry.NormalizedTitle]; !ok {
			idx.byNormalized[entry.NormalizedTitle] = pos
		}

		if entry.HasDirector() {
			idx.directors.add(entry.Director, entry.Title)
		}
		for _, actor := range entry.Cast {
			if actor != "" {
				idx.actors.add(actor, entry.Title)
			}
		}
	}
	return idx
}

// Len returns the number of catalog entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// FindByNormalizedTitle returns the lowest position whose normalized title
// equals norm.
func (idx *Index) FindByNormalizedTitle(norm string) (int, bool) {
	pos, ok := idx.byNormalized[norm]
	return pos, ok
}

// AllNormalizedTitles returns the normalized titles in position order.
func (idx *Index) AllNormalizedTitles() []string {
	return slices.Clone(idx.normalized)
}

// TitleAt returns the display title at position.
func (idx *Index) TitleAt(position int) (string, error) {
	if err := idx.checkPosition("title at", position); err != nil {
		return "", err
	}
	return idx.entries[position].Title, nil
}

// EntryAt returns a copy of the entry at position.
func (idx *Index) EntryAt(position int) (Entry, error) {
	if err := idx.checkPosition("entry at", position); err != nil {
		return Entry{}, err
	}
	entry := idx.entries[position]
	entry.Cast = slices.Clone(entry.Cast)
	return entry, nil
}

func (idx *Index) checkPosition(operation string, position int) error {
	if position < 0 || position >= len(idx.entries) {
		return services.Wrap(services.ErrNotFound, component, operation,
			fmt.Sprintf("position %d outside [0,%d)", position, len(idx.entries)), nil)
	}
	return nil
}

// FindByActor returns the titles of every actor whose name contains name,
// ignoring case. Titles are unioned in index order without repeats.
func (idx *Index) FindByActor(name string) []string {
	return idx.actors.find(name)
}

// FindByDirector is FindByActor over credited directors.
func (idx *Index) FindByDirector(name string) []string {
	return idx.directors.find(name)
}

// Titles returns display titles in position order whose text contains
// filter, ignoring case. An empty filter matches all. limit <= 0 means no
// limit.
func (idx *Index) Titles(filter string, limit int) []string {
	caser := cases.Lower(language.Und)
	needle := caser.String(strings.TrimSpace(filter))
	out := make([]string, 0)
	for _, entry := range idx.entries {
		if limit > 0 && len(out) >= limit {
			break
		}
		if needle != "" && !strings.Contains(caser.String(entry.Title), needle) {
			continue
		}
		out = append(out, entry.Title)
	}
	return out
}

// Stats reports entry and person counts.
func (idx *Index) Stats() Stats {
	return Stats{
		Entries:    len(idx.entries),
		Actors:     idx.actors.len(),
		Directors:  idx.directors.len(),
		Uncredited: idx.uncredited,
	}
}
