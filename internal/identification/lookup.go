package identification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"movietag/internal/identification/tmdb"
	"movietag/internal/logging"
	"movietag/internal/services"
)

// DefaultProbeTitle is searched when a query returns no candidates, to tell an
// unknown title apart from a broken connection or a rejected API key.
const DefaultProbeTitle = "The Matrix"

const impreciseAdvisory = "multiple candidates and no year; the first result was used and may be imprecise"

// Searcher is the part of the catalog client the resolver needs.
type Searcher interface {
	SearchMovie(ctx context.Context, query string) (*tmdb.SearchResponse, error)
}

// Resolution is the outcome of a successful lookup.
type Resolution struct {
	ID         int64
	Title      string
	Candidates int
	Advisory   string
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithProbeTitle overrides the reference title used to check connectivity.
func WithProbeTitle(title string) ResolverOption {
	return func(r *Resolver) {
		if title = strings.TrimSpace(title); title != "" {
			r.probeTitle = title
		}
	}
}

// Resolver maps a search query onto a single TMDB movie id.
type Resolver struct {
	searcher   Searcher
	logger     *slog.Logger
	probeTitle string
}

// NewResolver constructs a Resolver backed by searcher.
func NewResolver(searcher Searcher, logger *slog.Logger, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		searcher:   searcher,
		logger:     logging.NewComponentLogger(logger, "resolver"),
		probeTitle: DefaultProbeTitle,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve searches for query and selects one candidate. The first candidate
// whose release year matches wins; without a year match the first candidate
// in relevance order is used.
func (r *Resolver) Resolve(ctx context.Context, query SearchQuery) (Resolution, error) {
	if r == nil || r.searcher == nil {
		return Resolution{}, services.Wrap(services.ErrConfiguration, "resolver", "resolve", "catalog client unavailable", nil)
	}
	logger := logging.WithContext(ctx, r.logger)

	response, err := r.searcher.SearchMovie(ctx, query.Title)
	if err != nil {
		return Resolution{}, services.Wrap(services.ErrTransport, "resolver", "search", fmt.Sprintf("search %q", query.Title), err)
	}
	var results []tmdb.SearchResult
	if response != nil {
		results = response.Results
	}
	logger.Debug("catalog search complete",
		logging.String("query", query.String()),
		logging.Int("candidates", len(results)),
	)

	if len(results) == 0 {
		return Resolution{}, r.explainEmpty(ctx, logger, query)
	}

	best, advisory := selectCandidate(results, query.Year)
	resolution := Resolution{
		ID:         best.ID,
		Title:      strings.TrimSpace(best.Title),
		Candidates: len(results),
		Advisory:   advisory,
	}
	if advisory != "" {
		logging.WarnWithContext(logger, "catalog match may be imprecise",
			"match_imprecise",
			logging.String("query", query.String()),
			logging.Int64("tmdb_id", best.ID),
			logging.Int("candidates", len(results)),
			logging.String(logging.FieldErrorHint, "pass --year to narrow the match"),
			logging.String(logging.FieldImpact, "tags may describe a different movie"),
		)
	}
	logger.Info("catalog match selected",
		logging.String(logging.FieldEventType, "match_selected"),
		logging.String("query", query.String()),
		logging.Int64("tmdb_id", best.ID),
		logging.String("title", resolution.Title),
		logging.String("release_date", best.ReleaseDate),
	)
	return resolution, nil
}

// explainEmpty decides whether an empty result means the title is unknown or
// the catalog is unreachable.
func (r *Resolver) explainEmpty(ctx context.Context, logger *slog.Logger, query SearchQuery) error {
	probe, err := r.searcher.SearchMovie(ctx, r.probeTitle)
	if err != nil {
		return services.Wrap(services.ErrTransport, "resolver", "probe",
			"no results and the reference search failed; check the API key and network", err)
	}
	if probe == nil || len(probe.Results) == 0 {
		return services.Wrap(services.ErrTransport, "resolver", "probe",
			fmt.Sprintf("no results and the reference search for %q was also empty; check the API key and network", r.probeTitle), nil)
	}
	logger.Debug("reference search succeeded", logging.String("probe_title", r.probeTitle))
	return services.Wrap(services.ErrNotFound, "resolver", "search", fmt.Sprintf("no catalog match for %q", query.Title), nil)
}

func selectCandidate(results []tmdb.SearchResult, year int) (tmdb.SearchResult, string) {
	if len(results) == 1 {
		return results[0], ""
	}
	if year <= 0 {
		return results[0], impreciseAdvisory
	}
	prefix := fmt.Sprintf("%04d", year)
	for _, candidate := range results {
		if strings.HasPrefix(strings.TrimSpace(candidate.ReleaseDate), prefix) {
			return candidate, ""
		}
	}
	return results[0], ""
}
