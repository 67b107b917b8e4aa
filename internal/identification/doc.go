// Package identification turns a file name into a TMDB movie id.
//
// NormalizeTitle strips release noise (dots, underscores, resolution tokens)
// from a file-name leaf and extracts a release year when one is present. The
// Resolver searches the catalog and picks one candidate, preferring the first
// result whose release year matches. An empty result is followed by a search
// for a well-known title so that an unknown movie is reported differently
// from a bad API key or a dead connection.
package identification
