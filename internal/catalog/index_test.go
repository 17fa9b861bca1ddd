package catalog_test

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"cinematch/internal/catalog"
	"cinematch/internal/services"
	"cinematch/internal/testsupport"
)

func crew(t *testing.T, director string) string { return testsupport.CrewJSON(t, director) }

func cast(t *testing.T, names ...string) string { return testsupport.CastJSON(t, names...) }

func buildSample(t *testing.T) *catalog.Index {
	t.Helper()
	movies := []catalog.Movie{
		{Title: "Avatar", ReleaseDate: "2009-12-10"},
		{Title: "Titanic", ReleaseDate: "1997-11-18"},
		{Title: "Avatar 2"},
		{Title: "Big"},
		{Title: "AVATAR"},
		{Title: "Orphan"},
	}
	credits := []catalog.Credit{
		{Title: "Avatar", Cast: cast(t, "Sam Worthington", "Zoe Saldana"), Crew: crew(t, "James Cameron")},
		{Title: "Titanic", Cast: cast(t, "Leonardo DiCaprio", "Kate Winslet", "Billy Zane", "Kathy Bates", "Frances Fisher", "Gloria Stuart"), Crew: crew(t, "James Cameron")},
		{Title: "Avatar 2", Cast: cast(t, "Sam Worthington"), Crew: crew(t, "James Cameron")},
		{Title: "Big", Cast: cast(t, "Tom Hanks"), Crew: crew(t, "Penny Marshall")},
		{Title: "Big", Cast: cast(t, "Someone Else"), Crew: crew(t, "Nobody")},
		{Title: "AVATAR", Cast: `broken`, Crew: `broken`},
		{Title: "Not In Movies", Cast: cast(t, "Ghost"), Crew: crew(t, "Ghost Director")},
	}
	return catalog.Build(movies, credits)
}

func TestBuildJoinsCreditsByTitle(t *testing.T) {
	idx := buildSample(t)
	if idx.Len() != 6 {
		t.Fatalf("expected 6 entries, got %d", idx.Len())
	}

	titanic, err := idx.EntryAt(1)
	if err != nil {
		t.Fatalf("EntryAt: %v", err)
	}
	if titanic.Position != 1 || titanic.NormalizedTitle != "titanic" {
		t.Fatalf("unexpected entry: %+v", titanic)
	}
	if titanic.Director != "James Cameron" {
		t.Fatalf("unexpected director: %q", titanic.Director)
	}
	if len(titanic.Cast) != catalog.MaxCast || titanic.Cast[4] != "Frances Fisher" {
		t.Fatalf("expected first five cast members, got %v", titanic.Cast)
	}

	big, _ := idx.EntryAt(3)
	if big.Director != "Penny Marshall" || !slices.Equal(big.Cast, []string{"Tom Hanks"}) {
		t.Fatalf("expected first credit row to win, got %+v", big)
	}

	broken, _ := idx.EntryAt(4)
	if broken.Director != catalog.UnknownDirector || len(broken.Cast) != 0 {
		t.Fatalf("expected defaults for unparseable credits, got %+v", broken)
	}

	orphan, _ := idx.EntryAt(5)
	if orphan.Director != catalog.UnknownDirector || orphan.Cast == nil || len(orphan.Cast) != 0 {
		t.Fatalf("expected defaults for missing credits, got %+v", orphan)
	}

	stats := idx.Stats()
	if stats.Uncredited != 1 || stats.Directors != 2 || stats.Entries != 6 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestFindByNormalizedTitleReturnsLowestPosition(t *testing.T) {
	idx := buildSample(t)
	pos, ok := idx.FindByNormalizedTitle("avatar")
	if !ok || pos != 0 {
		t.Fatalf("expected position 0, got %d %v", pos, ok)
	}
	if _, ok := idx.FindByNormalizedTitle("Avatar"); ok {
		t.Fatal("expected exact normalized equality only")
	}
	if _, ok := idx.FindByNormalizedTitle("avat"); ok {
		t.Fatal("expected no prefix match")
	}
}

func TestAllNormalizedTitlesParallelsPositions(t *testing.T) {
	idx := buildSample(t)
	want := []string{"avatar", "titanic", "avatar2", "big", "avatar", "orphan"}
	got := idx.AllNormalizedTitles()
	if !slices.Equal(got, want) {
		t.Fatalf("AllNormalizedTitles = %v, want %v", got, want)
	}
	got[0] = "mutated"
	if idx.AllNormalizedTitles()[0] != "avatar" {
		t.Fatal("expected a copy")
	}
}

func TestPositionLookupsOutOfRange(t *testing.T) {
	idx := buildSample(t)
	for _, pos := range []int{-1, idx.Len(), 100} {
		if _, err := idx.TitleAt(pos); !errors.Is(err, services.ErrNotFound) {
			t.Fatalf("TitleAt(%d): expected ErrNotFound, got %v", pos, err)
		}
		if _, err := idx.EntryAt(pos); !errors.Is(err, services.ErrNotFound) {
			t.Fatalf("EntryAt(%d): expected ErrNotFound, got %v", pos, err)
		}
	}
	title, err := idx.TitleAt(2)
	if err != nil || title != "Avatar 2" {
		t.Fatalf("TitleAt(2) = %q, %v", title, err)
	}
}

func TestFindByDirectorPreservesCatalogOrder(t *testing.T) {
	idx := buildSample(t)
	got := idx.FindByDirector("cameron")
	want := []string{"Avatar", "Titanic", "Avatar 2"}
	if !slices.Equal(got, want) {
		t.Fatalf("FindByDirector = %v, want %v", got, want)
	}
	if got := idx.FindByDirector("Ghost Director"); len(got) != 0 {
		t.Fatalf("expected credits without movie rows to be ignored, got %v", got)
	}
}

func TestFindByActorUnionsSubstringMatches(t *testing.T) {
	movies := []catalog.Movie{{Title: "A"}, {Title: "B"}, {Title: "C"}}
	credits := []catalog.Credit{
		{Title: "A", Cast: cast(t, "Tom Hanks"), Crew: crew(t, "")},
		{Title: "B", Cast: cast(t, "Tom Hanks", "Tom Hanksy"), Crew: crew(t, "")},
		{Title: "C", Cast: cast(t, "Tom Hanksy"), Crew: crew(t, "")},
	}
	idx := catalog.Build(movies, credits)

	got := idx.FindByActor("Tom Hanks")
	if !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("FindByActor = %v, want [A B C]", got)
	}
	if got := idx.FindByActor("tom HANKSY"); !slices.Equal(got, []string{"B", "C"}) {
		t.Fatalf("expected case-insensitive match, got %v", got)
	}
	if got := idx.FindByActor("Meryl"); len(got) != 0 {
		t.Fatalf("expected no match, got %v", got)
	}
	if got := idx.FindByActor("   "); len(got) != 0 {
		t.Fatalf("expected blank query to match nothing, got %v", got)
	}
}

func TestFindByActorOrdersByFirstSeenKey(t *testing.T) {
	movies := []catalog.Movie{{Title: "First"}, {Title: "Second"}, {Title: "Third"}}
	credits := []catalog.Credit{
		{Title: "First", Cast: cast(t, "Chris Evans"), Crew: crew(t, "")},
		{Title: "Second", Cast: cast(t, "Chris Pratt", "Chris Evans"), Crew: crew(t, "")},
		{Title: "Third", Cast: cast(t, "Chris Pratt"), Crew: crew(t, "")},
	}
	idx := catalog.Build(movies, credits)
	got := idx.FindByActor("chris")
	if !slices.Equal(got, []string{"First", "Second", "Third"}) {
		t.Fatalf("FindByActor = %v", got)
	}
}

func TestTitlesFilterAndLimit(t *testing.T) {
	idx := buildSample(t)
	if got := idx.Titles("avatar", 0); !slices.Equal(got, []string{"Avatar", "Avatar 2", "AVATAR"}) {
		t.Fatalf("Titles filter = %v", got)
	}
	if got := idx.Titles("", 2); !slices.Equal(got, []string{"Avatar", "Titanic"}) {
		t.Fatalf("Titles limit = %v", got)
	}
}

func TestConcurrentLookups(t *testing.T) {
	idx := buildSample(t)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if len(idx.FindByDirector("james")) != 3 {
					t.Error("unexpected director result")
					return
				}
				if _, ok := idx.FindByNormalizedTitle("titanic"); !ok {
					t.Error("expected titanic")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestLoadFilesFromCSV(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fixture := testsupport.Fixture{
		Movies: []testsupport.MovieRow{
			{Title: "Avatar", ReleaseDate: "2009-12-10", VoteAverage: "7.2", Overview: "Pandora"},
			{Title: "Titanic", ReleaseDate: "1997-11-18", VoteAverage: "7.5"},
		},
		Credits: []testsupport.CreditRow{
			{Title: "Avatar", Cast: []string{"Sam Worthington"}, Director: "James Cameron"},
		},
		Similarity: [][]float64{{1, 0.5}, {0.5, 1}},
	}
	fixture.Write(t, cfg)

	idx, err := catalog.LoadFiles(cfg.Data.MoviesPath, cfg.Data.CreditsPath)
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if idx.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", idx.Len())
	}
	entry, _ := idx.EntryAt(0)
	if entry.Director != "James Cameron" || entry.Cast[0] != "Sam Worthington" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if got := idx.FindByActor("worthington"); !slices.Equal(got, []string{"Avatar"}) {
		t.Fatalf("FindByActor = %v", got)
	}
}
