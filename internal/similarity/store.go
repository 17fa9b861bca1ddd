package similarity

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cinematch/internal/services"
)

const component = "similarity"

// Store is an immutable n x n similarity matrix in row-major order.
type Store struct {
	n      int
	values []float64
}

// New copies rows into a Store. Every row must have len(rows) scores.
func New(rows [][]float64) (*Store, error) {
	n := len(rows)
	values := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, services.Wrap(services.ErrLoad, component, "build",
				fmt.Sprintf("row %d has %d scores, want %d", i, len(row), n), nil)
		}
		values = append(values, row...)
	}
	return &Store{n: n, values: values}, nil
}

// Load reads a similarity artifact, choosing the decoder by file extension.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, component, "open", path, err)
	}
	defer f.Close()

	var store *Store
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".npy":
		size := int64(-1)
		if info, statErr := f.Stat(); statErr == nil {
			size = info.Size()
		}
		store, err = decodeNPY(f, size)
	case ".json":
		store, err = decodeJSON(f)
	case ".csv":
		store, err = decodeCSV(f)
	default:
		return nil, services.Wrap(services.ErrLoad, component, "open", fmt.Sprintf("unsupported artifact extension %q", ext), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

// Size returns the number of rows.
func (s *Store) Size() int {
	return s.n
}

// RowAt returns a copy of the scores for position.
func (s *Store) RowAt(position int) ([]float64, error) {
	if position < 0 || position >= s.n {
		return nil, services.Wrap(services.ErrNotFound, component, "row at",
			fmt.Sprintf("position %d outside [0,%d)", position, s.n), nil)
	}
	row := make([]float64, s.n)
	copy(row, s.values[position*s.n:(position+1)*s.n])
	return row, nil
}

// Validate fails with services.ErrLoad unless the store has expected rows.
func (s *Store) Validate(expected int) error {
	if s.n != expected {
		return services.Wrap(services.ErrLoad, component, "validate",
			fmt.Sprintf("matrix has %d rows but catalog has %d entries", s.n, expected), nil)
	}
	return nil
}
