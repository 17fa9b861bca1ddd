// Package app assembles the read-only catalog, similarity store, poster
// service, and recommendation engine once at startup.
//
// An App is the explicit context handed to every command. Nothing in it is
// mutated after Open returns.
package app
