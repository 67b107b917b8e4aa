// Package tmdb provides the minimal TMDB API client used to resolve and
// describe movies.
//
// It authenticates requests with an api_key query parameter and exposes movie
// search, movie detail, and movie credits lookups. Detail payloads are kept
// both typed and as a raw JSON object so extra fields can be looked up by
// name. Every call is a single bounded attempt; failures are tagged with
// services.ErrTransport. Options allow tests to supply custom HTTP clients.
package tmdb
