package recommend

import (
	"testing"

	"cinematch/internal/catalog"
	"cinematch/internal/similarity"
	"cinematch/internal/testsupport"
)

type castFixture struct {
	title    string
	cast     []string
	director string
}

func buildCatalog(t *testing.T, rows ...castFixture) *catalog.Index {
	t.Helper()
	movies := make([]catalog.Movie, 0, len(rows))
	credits := make([]catalog.Credit, 0, len(rows))
	for _, row := range rows {
		movies = append(movies, catalog.Movie{Title: row.title, ReleaseDate: "2000-01-01"})
		credits = append(credits, catalog.Credit{
			Title: row.title,
			Cast:  testsupport.CastJSON(t, row.cast...),
			Crew:  testsupport.CrewJSON(t, row.director),
		})
	}
	return catalog.Build(movies, credits)
}

func buildScores(t *testing.T, rows [][]float64) *similarity.Store {
	t.Helper()
	store, err := similarity.New(rows)
	if err != nil {
		t.Fatalf("similarity.New: %v", err)
	}
	return store
}

// identityScores returns an n x n matrix with 1 on the diagonal and
// descending scores elsewhere.
func identityScores(t *testing.T, n int) *similarity.Store {
	t.Helper()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			if i == j {
				rows[i][j] = 1
			} else {
				rows[i][j] = 1 / float64(2+j)
			}
		}
	}
	return buildScores(t, rows)
}

func avatarCatalog(t *testing.T) *catalog.Index {
	return buildCatalog(t,
		castFixture{title: "Avatar", cast: []string{"Sam Worthington"}, director: "James Cameron"},
		castFixture{title: "Titanic", cast: []string{"Leonardo DiCaprio"}, director: "James Cameron"},
		castFixture{title: "Avatar 2", cast: []string{"Sam Worthington"}, director: "James Cameron"},
	)
}
