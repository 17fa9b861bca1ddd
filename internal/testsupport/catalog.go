package testsupport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/goccy/go-json"

	"cinematch/internal/config"
)

// MovieRow is a movie table row. Empty fields are written as blank cells.
type MovieRow struct {
	Title       string
	ReleaseDate string
	VoteAverage string
	Overview    string
}

// CreditRow is a credits table row. CastJSON and CrewJSON, when set, are
// written verbatim instead of being generated from Cast and Director.
type CreditRow struct {
	Title    string
	Cast     []string
	Director string
	CastJSON string
	CrewJSON string
}

// Fixture is a complete set of catalog artifacts.
type Fixture struct {
	Movies     []MovieRow
	Credits    []CreditRow
	Similarity [][]float64
}

// Write stores the fixture at the data paths of cfg.
func (f Fixture) Write(t testing.TB, cfg *config.Config) {
	t.Helper()
	WriteMoviesCSV(t, cfg.Data.MoviesPath, f.Movies)
	WriteCreditsCSV(t, cfg.Data.CreditsPath, f.Credits)
	WriteSimilarityJSON(t, cfg.Data.SimilarityPath, f.Similarity)
}

// WriteMoviesCSV writes rows in the TMDB movie table layout.
func WriteMoviesCSV(t testing.TB, path string, rows []MovieRow) {
	t.Helper()
	records := [][]string{{"id", "title", "release_date", "vote_average", "overview"}}
	for i, row := range rows {
		records = append(records, []string{strconv.Itoa(i + 1), row.Title, row.ReleaseDate, row.VoteAverage, row.Overview})
	}
	writeCSV(t, path, records)
}

// WriteCreditsCSV writes rows in the TMDB credits table layout.
func WriteCreditsCSV(t testing.TB, path string, rows []CreditRow) {
	t.Helper()
	records := [][]string{{"movie_id", "title", "cast", "crew"}}
	for i, row := range rows {
		cast := row.CastJSON
		if cast == "" {
			cast = CastJSON(t, row.Cast...)
		}
		crew := row.CrewJSON
		if crew == "" {
			crew = CrewJSON(t, row.Director)
		}
		records = append(records, []string{strconv.Itoa(i + 1), row.Title, cast, crew})
	}
	writeCSV(t, path, records)
}

// WriteSimilarityJSON writes a similarity matrix as a JSON array of rows.
func WriteSimilarityJSON(t testing.TB, path string, rows [][]float64) {
	t.Helper()
	data, err := json.Marshal(rows)
	if err != nil {
		t.Fatalf("marshal similarity: %v", err)
	}
	writeBytes(t, path, data)
}

// CastJSON renders a TMDB cast cell.
func CastJSON(t testing.TB, names ...string) string {
	t.Helper()
	type member struct {
		CastID    int    `json:"cast_id"`
		Character string `json:"character"`
		Name      string `json:"name"`
		Order     int    `json:"order"`
	}
	members := make([]member, 0, len(names))
	for i, name := range names {
		members = append(members, member{CastID: i + 1, Character: "Role", Name: name, Order: i})
	}
	data, err := json.Marshal(members)
	if err != nil {
		t.Fatalf("marshal cast: %v", err)
	}
	return string(data)
}

// CrewJSON renders a TMDB crew cell with a producer and, when set, a director.
func CrewJSON(t testing.TB, director string) string {
	t.Helper()
	type member struct {
		Department string `json:"department"`
		Job        string `json:"job"`
		Name       string `json:"name"`
	}
	members := []member{{Department: "Production", Job: "Producer", Name: "Some Producer"}}
	if director != "" {
		members = append(members, member{Department: "Directing", Job: "Director", Name: director})
	}
	data, err := json.Marshal(members)
	if err != nil {
		t.Fatalf("marshal crew: %v", err)
	}
	return string(data)
}

func writeCSV(t testing.TB, path string, records [][]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeBytes(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
