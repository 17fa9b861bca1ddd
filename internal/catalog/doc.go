// Package catalog owns the immutable movie catalog and its reverse indexes.
//
// Build joins the movie attribute table with the credits table by exact
// title, derives the director and lead cast of every movie, and indexes
// actors and directors by the order their titles appear in the catalog.
// LoadFiles reads both tables from CSV files in the TMDB 5000 layout.
//
// An Index is never mutated after Build returns, so every lookup is safe for
// concurrent use without locking.
package catalog
