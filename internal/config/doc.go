// Package config loads, normalizes, and validates movietag configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the TMDB_API_KEY environment
// fallback. The Config type centralizes the catalog credentials, default tag
// policy, mux tool, and logging settings the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// sanitized values and clear validation errors.
package config
