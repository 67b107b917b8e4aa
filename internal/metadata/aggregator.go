package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"movietag/internal/identification/tmdb"
	"movietag/internal/logging"
	"movietag/internal/services"
)

// Catalog is the part of the catalog client the aggregator needs.
type Catalog interface {
	GetMovieDetails(ctx context.Context, movieID int64) (*tmdb.Details, error)
	GetMovieCredits(ctx context.Context, movieID int64) (*tmdb.Credits, error)
}

// Aggregator builds a Record for a resolved movie id.
type Aggregator struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewAggregator constructs an Aggregator backed by catalog.
func NewAggregator(catalog Catalog, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		catalog: catalog,
		logger:  logging.NewComponentLogger(logger, "aggregator"),
	}
}

// Aggregate fetches the detail and credit payloads for id and assembles the
// record: TMDB, IMDb, Cast, Written By, Directed By, then extras in the order
// given. Categories in skip are left out. A missing or malformed field is
// logged and omitted; only the failure of both fetches is an error.
func (a *Aggregator) Aggregate(ctx context.Context, id int64, skip SkipSet, extras []string) (*Record, error) {
	if a == nil || a.catalog == nil {
		return nil, services.Wrap(services.ErrConfiguration, "aggregator", "aggregate", "catalog client unavailable", nil)
	}
	logger := logging.WithContext(ctx, a.logger).With(logging.Int64("tmdb_id", id))

	var (
		details    *tmdb.Details
		credits    *tmdb.Credits
		detailErr  error
		creditsErr error
	)
	// A failed fetch only degrades the record, so fetch errors stay local.
	// Cancellation of the run is the one error that stops the group.
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		details, detailErr = a.catalog.GetMovieDetails(groupCtx, id)
		return ctx.Err()
	})
	group.Go(func() error {
		credits, creditsErr = a.catalog.GetMovieCredits(groupCtx, id)
		return ctx.Err()
	})
	if err := group.Wait(); err != nil {
		return nil, services.Wrap(services.ErrTransport, "aggregator", "fetch",
			fmt.Sprintf("fetch for movie %d interrupted", id), err)
	}

	if detailErr != nil && creditsErr != nil {
		return nil, services.Wrap(services.ErrTransport, "aggregator", "fetch",
			fmt.Sprintf("detail and credits unavailable for movie %d", id), errors.Join(detailErr, creditsErr))
	}
	if detailErr != nil {
		a.partial(logger, "detail payload unavailable", "detail", detailErr)
		details = nil
	}
	if creditsErr != nil {
		a.partial(logger, "credits payload unavailable", "credits", creditsErr)
		credits = nil
	}

	record := NewRecord()
	if !skip.Has(CategoryTMDbID) {
		a.add(logger, record, NameTMDB, Text(fmt.Sprintf("movie/%d", id)))
	}
	if !skip.Has(CategoryIMDbID) && details != nil {
		if imdb := strings.TrimSpace(details.IMDbID); imdb != "" {
			a.add(logger, record, NameIMDb, Text(imdb))
		} else {
			logging.WarnWithContext(logger, "imdb id missing from detail payload",
				"field_missing",
				logging.String("field", NameIMDb),
				logging.String(logging.FieldImpact, "IMDb tag omitted"),
				logging.String(logging.FieldErrorHint, "the catalog entry has no external id"),
			)
		}
	}
	if credits != nil {
		if !skip.Has(CategoryCast) {
			a.addList(logger, record, NameCast, castNames(credits.Cast, maxCast))
		}
		if !skip.Has(CategoryWriters) {
			a.addList(logger, record, NameWrittenBy, writerCredits(credits.Crew, maxWriters))
		}
		if !skip.Has(CategoryDirectors) {
			a.addList(logger, record, NameDirectedBy, directorNames(credits.Crew, maxDirectors))
		}
	}

	for _, name := range extras {
		if strings.TrimSpace(name) == "" {
			continue
		}
		a.addExtra(logger, record, details, name)
	}

	logger.Info("metadata aggregated",
		logging.String(logging.FieldEventType, "metadata_aggregated"),
		logging.Int("fields", record.Len()),
		logging.Strings("keys", record.Keys()),
	)
	return record, nil
}

func (a *Aggregator) addExtra(logger *slog.Logger, record *Record, details *tmdb.Details, name string) {
	spec := LookupField(name)
	if details == nil {
		logger.Info("extra field skipped; detail payload unavailable", logging.String("field", spec.Path))
		return
	}
	raw, ok := details.Lookup(spec.Path)
	if !ok {
		logger.Info("extra field absent from detail payload", logging.String("field", spec.Path))
		return
	}
	value, present, err := formatField(spec, raw)
	if err != nil {
		a.partial(logger, "extra field could not be formatted", spec.Path, err)
		return
	}
	if !present {
		logger.Info("extra field empty", logging.String("field", spec.Path))
		return
	}
	a.add(logger, record, spec.DisplayName, value)
}

func (a *Aggregator) addList(logger *slog.Logger, record *Record, name string, values []string) {
	if len(values) == 0 {
		logger.Info("credit list empty", logging.String("field", name))
		return
	}
	a.add(logger, record, name, List(values...))
}

func (a *Aggregator) add(logger *slog.Logger, record *Record, name string, value Value) {
	if err := record.Add(name, value); err != nil {
		logging.WarnWithContext(logger, "duplicate field dropped",
			"field_duplicate",
			logging.String("field", name),
			logging.Error(err),
			logging.String(logging.FieldImpact, "the first value for this name is kept"),
			logging.String(logging.FieldErrorHint, "remove the repeated property"),
		)
	}
}

func (a *Aggregator) partial(logger *slog.Logger, msg, field string, err error) {
	if !errors.Is(err, services.ErrPartialField) {
		err = fmt.Errorf("%w: %w", services.ErrPartialField, err)
	}
	logging.WarnWithContext(logger, msg,
		"field_unavailable",
		logging.String("field", field),
		logging.Error(err),
		logging.String(logging.FieldImpact, "dependent tags omitted"),
	)
}

func castNames(cast []tmdb.CastMember, limit int) []string {
	seen := make(map[string]struct{}, limit)
	names := make([]string, 0, limit)
	for _, member := range cast {
		if len(names) == limit {
			break
		}
		name := strings.TrimSpace(member.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

func writerCredits(crew []tmdb.CrewMember, limit int) []string {
	type credit struct{ name, job string }
	seen := make(map[credit]struct{}, limit)
	out := make([]string, 0, limit)
	for _, member := range crew {
		if len(out) == limit {
			break
		}
		if member.Department != "Writing" {
			continue
		}
		c := credit{name: strings.TrimSpace(member.Name), job: strings.TrimSpace(member.Job)}
		if c.name == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		if c.job == "" {
			out = append(out, c.name)
			continue
		}
		out = append(out, fmt.Sprintf("%s (%s)", c.name, c.job))
	}
	return out
}

func directorNames(crew []tmdb.CrewMember, limit int) []string {
	seen := make(map[string]struct{}, limit)
	names := make([]string, 0, limit)
	for _, member := range crew {
		if len(names) == limit {
			break
		}
		if member.Department != "Directing" || member.Job != "Director" {
			continue
		}
		name := strings.TrimSpace(member.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
