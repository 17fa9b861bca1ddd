package catalog

import (
	"errors"
	"strings"
	"testing"

	"cinematch/internal/services"
)

func TestReadMoviesParsesOptionalColumns(t *testing.T) {
	input := "\ufeffbudget,Title,release_date,vote_average,overview\n" +
		"1,Avatar,2009-12-10,7.2,\"In the 22nd century, a marine...\"\n" +
		"2,Untitled,,,\n" +
		"3,Odd,2001-01-01,eleven,x\n" +
		"4,Over,2001-01-01,10.5,x\n"
	movies, err := ReadMovies(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadMovies: %v", err)
	}
	if len(movies) != 4 {
		t.Fatalf("expected 4 movies, got %d", len(movies))
	}
	avatar := movies[0]
	if avatar.Title != "Avatar" || avatar.ReleaseDate != "2009-12-10" {
		t.Fatalf("unexpected movie: %+v", avatar)
	}
	if avatar.VoteAverage == nil || *avatar.VoteAverage != 7.2 {
		t.Fatalf("unexpected vote average: %v", avatar.VoteAverage)
	}
	if avatar.Overview != "In the 22nd century, a marine..." {
		t.Fatalf("unexpected overview: %q", avatar.Overview)
	}
	for _, m := range movies[1:] {
		if m.VoteAverage != nil {
			t.Fatalf("expected absent vote average for %q, got %v", m.Title, *m.VoteAverage)
		}
	}
}

func TestReadMoviesKeepsCellsVerbatim(t *testing.T) {
	input := "title,release_date,overview\n" +
		"Padded, 1999-03-31 ,\" Spaced synopsis \"\n"
	movies, err := ReadMovies(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadMovies: %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("expected 1 movie, got %d", len(movies))
	}
	if movies[0].ReleaseDate != " 1999-03-31 " || movies[0].Overview != " Spaced synopsis " {
		t.Fatalf("expected raw cells, got %+v", movies[0])
	}
}

func TestReadMoviesWithoutOptionalColumns(t *testing.T) {
	movies, err := ReadMovies(strings.NewReader("title\nAlien\n"))
	if err != nil {
		t.Fatalf("ReadMovies: %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "Alien" || movies[0].ReleaseDate != "" {
		t.Fatalf("unexpected movies: %+v", movies)
	}
}

func TestReadTablesRejectMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		read func() error
	}{
		{"empty movies", func() error { _, err := ReadMovies(strings.NewReader("")); return err }},
		{"movies without title", func() error { _, err := ReadMovies(strings.NewReader("id,name\n1,x\n")); return err }},
		{"ragged movies", func() error { _, err := ReadMovies(strings.NewReader("id,title\n1,x,extra\n")); return err }},
		{"credits without crew", func() error { _, err := ReadCredits(strings.NewReader("title,cast\nx,[]\n")); return err }},
		{"unterminated quote", func() error { _, err := ReadCredits(strings.NewReader("title,cast,crew\n\"x,[],[]\n")); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, services.ErrLoad) {
				t.Fatalf("expected ErrLoad, got %v", err)
			}
		})
	}
}

func TestLoadFilesMissingPathIsLoadError(t *testing.T) {
	_, err := LoadFiles("/nonexistent/movies.csv", "/nonexistent/credits.csv")
	if !errors.Is(err, services.ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
}
