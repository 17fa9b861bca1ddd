// Package config loads, normalizes, and validates cinematch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OMDB_API_KEY and TMDB_API_KEY. The Config type centralizes the data
// artifact locations, result limits, poster collaborator settings, and log
// output so every command discovers them in one pass.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical provider names, and clear validation errors.
package config
