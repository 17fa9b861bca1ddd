package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"cinematch/internal/services"
)

const component = "catalog"

// LoadFiles reads the movie and credit tables and builds the index. Any
// read or shape failure is wrapped with services.ErrLoad.
func LoadFiles(moviesPath, creditsPath string) (*Index, error) {
	movies, err := readFile(moviesPath, ReadMovies)
	if err != nil {
		return nil, err
	}
	credits, err := readFile(creditsPath, ReadCredits)
	if err != nil {
		return nil, err
	}
	return Build(movies, credits), nil
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, component, "open table", path, err)
	}
	defer f.Close()
	rows, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// ReadMovies parses the movie attribute table. Only the title column is
// required; release_date, vote_average and overview are read when present.
func ReadMovies(r io.Reader) ([]Movie, error) {
	cols, records, err := readTable(r, "movies", "title")
	if err != nil {
		return nil, err
	}
	movies := make([]Movie, 0, len(records))
	for _, rec := range records {
		movies = append(movies, Movie{
			Title:       cols.get(rec, "title"),
			ReleaseDate: cols.get(rec, "release_date"),
			VoteAverage: parseVoteAverage(cols.get(rec, "vote_average")),
			Overview:    cols.get(rec, "overview"),
		})
	}
	return movies, nil
}

// ReadCredits parses the credits table, which must carry title, cast and
// crew columns.
func ReadCredits(r io.Reader) ([]Credit, error) {
	cols, records, err := readTable(r, "credits", "title", "cast", "crew")
	if err != nil {
		return nil, err
	}
	credits := make([]Credit, 0, len(records))
	for _, rec := range records {
		credits = append(credits, Credit{
			Title: cols.get(rec, "title"),
			Cast:  cols.get(rec, "cast"),
			Crew:  cols.get(rec, "crew"),
		})
	}
	return credits, nil
}

type columns map[string]int

func (c columns) get(record []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func readTable(r io.Reader, table string, required ...string) (columns, [][]string, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, services.Wrap(services.ErrLoad, component, "read "+table, "empty table", nil)
		}
		return nil, nil, services.Wrap(services.ErrLoad, component, "read "+table, "header", err)
	}

	cols := make(columns, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, nil, services.Wrap(services.ErrLoad, component, "read "+table, fmt.Sprintf("missing column %q", name), nil)
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, services.Wrap(services.ErrLoad, component, "read "+table, "malformed row", err)
	}
	return cols, records, nil
}

// parseVoteAverage returns nil for blank, non-numeric or out-of-range values.
func parseVoteAverage(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || value < 0 || value > 10 {
		return nil
	}
	return &value
}
