// Package metadata assembles the ordered tag record for a movie.
//
// The Aggregator fetches the TMDB detail and credit payloads for one movie id
// and fills a Record with the built-in categories followed by any extra
// properties requested by name. Extra properties are resolved through a table
// of known detail keys with a generic fallback for any other key; values are
// shaped (currency, date, list, scalar) at format time.
package metadata
