// Package similarity provides positional access to the precomputed
// item-item similarity matrix.
//
// Row i holds the similarity of catalog position i to every position j.
// Artifacts are NumPy .npy files (float32 or float64, C or Fortran order),
// JSON arrays of rows, or CSV files with one row per line. The matrix must be
// square and, once validated against the catalog, is never mutated.
package similarity
