package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"movietag/internal/deps"
	"movietag/internal/fileutil"
	"movietag/internal/identification"
	"movietag/internal/identification/tmdb"
	"movietag/internal/logging"
	"movietag/internal/metadata"
	"movietag/internal/services"
	"movietag/internal/stageexec"
	"movietag/internal/tags"
)

const documentMode os.FileMode = 0o644

// Attacher embeds a finished tag document into a container.
type Attacher interface {
	Attach(ctx context.Context, containerPath, documentPath string) error
	Tool() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithAttacher enables muxing through attacher.
func WithAttacher(attacher Attacher) Option {
	return func(r *Runner) { r.attacher = attacher }
}

// WithToolLocator replaces the PATH lookup used before muxing.
func WithToolLocator(locator deps.ToolLocator) Option {
	return func(r *Runner) {
		if locator != nil {
			r.locator = locator
		}
	}
}

// WithResolverOptions forwards options to the identity resolver.
func WithResolverOptions(opts ...identification.ResolverOption) Option {
	return func(r *Runner) { r.resolverOpts = append(r.resolverOpts, opts...) }
}

// WithIDGenerator replaces the correlation id source.
func WithIDGenerator(fn func() string) Option {
	return func(r *Runner) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// Runner executes the title -> id -> record -> document pipeline.
type Runner struct {
	catalog      tmdb.Catalog
	attacher     Attacher
	locator      deps.ToolLocator
	logger       *slog.Logger
	resolverOpts []identification.ResolverOption
	newID        func() string
	writeFile    func(path string, data []byte, mode os.FileMode) error
}

// NewRunner constructs a Runner backed by catalog.
func NewRunner(catalog tmdb.Catalog, opts ...Option) *Runner {
	r := &Runner{
		catalog:   catalog,
		locator:   deps.PathLocator{},
		newID:     uuid.NewString,
		writeFile: fileutil.WriteFileAtomic,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "pipeline")
	return r
}

// Run executes one tagging run. Input problems are reported before any
// catalog call. A write failure that leaves a non-empty document in place is
// reported through Result.PartialWrite instead of an error. Mux problems never
// fail the run; they are collected in Result.Advisories.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	result := Result{CorrelationID: r.newID()}
	ctx = services.WithRequestID(ctx, result.CorrelationID)
	logger := logging.WithContext(ctx, r.logger)

	skip, err := validateRequest(req)
	if err != nil {
		logger.Error("input rejected",
			logging.String(logging.FieldEventType, "input_rejected"),
			logging.Error(err),
		)
		return result, err
	}
	if r.catalog == nil {
		return result, services.Wrap(services.ErrConfiguration, "pipeline", "run", "catalog client unavailable", nil)
	}

	query, err := r.buildQuery(req, logger)
	if err != nil {
		return result, services.Wrap(services.ErrInput, "pipeline", "normalize", "derive search title", err)
	}
	result.Query = query
	result.DocumentPath = req.Destination

	logger.Info("tagging run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("query", query.String()),
		logging.String("destination", req.Destination),
		logging.String("container", req.Container),
		logging.Bool("dry_run", req.DryRun),
	)

	resolver := identification.NewResolver(r.catalog, r.logger, r.resolverOpts...)
	if err := stageexec.Run(ctx, stageexec.Options{
		Logger:    r.logger,
		StageName: "resolve",
		Run: func(ctx context.Context, _ *slog.Logger) error {
			res, err := resolver.Resolve(ctx, query)
			result.Resolution = res
			return err
		},
	}); err != nil {
		return result, err
	}
	if result.Resolution.Advisory != "" {
		result.Advisories = append(result.Advisories, result.Resolution.Advisory)
	}

	aggregator := metadata.NewAggregator(r.catalog, r.logger)
	if err := stageexec.Run(ctx, stageexec.Options{
		Logger:    r.logger,
		StageName: "aggregate",
		Run: func(ctx context.Context, _ *slog.Logger) error {
			record, err := aggregator.Aggregate(ctx, result.Resolution.ID, skip, req.Properties)
			result.Record = record
			return err
		},
	}); err != nil {
		return result, err
	}

	document, err := tags.SerializeRecord(result.Record)
	if err != nil {
		return result, err
	}
	result.Document = document

	if req.DryRun {
		logger.Info("dry run; document not written",
			logging.String(logging.FieldEventType, "run_complete"),
			logging.Int("fields", result.Record.Len()),
		)
		return result, nil
	}

	if err := stageexec.Run(ctx, stageexec.Options{
		Logger:    r.logger,
		StageName: "write",
		Run: func(ctx context.Context, stageLogger *slog.Logger) error {
			return r.write(stageLogger, req, &result)
		},
	}); err != nil {
		return result, err
	}

	if result.Written && strings.TrimSpace(req.Container) != "" {
		_ = stageexec.Run(ctx, stageexec.Options{
			Logger:    r.logger,
			StageName: "mux",
			Run: func(ctx context.Context, stageLogger *slog.Logger) error {
				r.mux(ctx, stageLogger, req, &result)
				return nil
			},
		})
	}

	logger.Info("tagging run complete",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int64("tmdb_id", result.Resolution.ID),
		logging.Int("fields", result.Record.Len()),
		logging.Bool("written", result.Written),
		logging.Bool("partial_write", result.PartialWrite),
		logging.Bool("muxed", result.Muxed),
		logging.Int("advisories", len(result.Advisories)),
	)
	return result, nil
}

// Validate checks a request the way Run does before any catalog call. Callers
// can use it to report input problems ahead of other setup.
func Validate(req Request) error {
	_, err := validateRequest(req)
	return err
}

func validateRequest(req Request) (metadata.SkipSet, error) {
	dest := strings.TrimSpace(req.Destination)
	if dest == "" {
		return nil, services.Wrap(services.ErrInput, "pipeline", "validate", "destination path is required", nil)
	}
	if err := req.validateYear(); err != nil {
		return nil, services.Wrap(services.ErrInput, "pipeline", "validate", err.Error(), nil)
	}
	skip, err := metadata.ParseSkip(req.Skip)
	if err != nil {
		return nil, err
	}
	if err := fileutil.CheckParentDir(dest); err != nil {
		return nil, services.Wrap(services.ErrInput, "pipeline", "validate", "destination directory unusable", err)
	}
	if info, err := os.Stat(dest); err == nil {
		if info.IsDir() {
			return nil, services.Wrap(services.ErrInput, "pipeline", "validate", fmt.Sprintf("destination %s is a directory", dest), nil)
		}
		if !req.Overwrite && !req.DryRun {
			return nil, services.Wrap(services.ErrInput, "pipeline", "validate",
				fmt.Sprintf("destination %s already exists; pass --overwrite to replace it", dest), nil)
		}
	}
	return skip, nil
}

func (r *Runner) buildQuery(req Request, logger *slog.Logger) (identification.SearchQuery, error) {
	if title := strings.TrimSpace(req.Title); title != "" {
		return identification.NewSearchQuery(title, req.Year)
	}
	query, err := identification.SearchQueryFor(req.searchLeaf(), logger)
	if err != nil {
		return query, err
	}
	if req.Year != 0 {
		query.Year = req.Year
	}
	return query, nil
}

func (r *Runner) write(logger *slog.Logger, req Request, result *Result) error {
	dest := req.Destination
	unlock, err := fileutil.LockPath(dest)
	if err != nil {
		return r.writeFailure(logger, dest, result, err)
	}
	defer func() {
		if err := unlock(); err != nil {
			logger.Debug("release destination lock failed", logging.Error(err))
		}
	}()

	if !req.Overwrite && fileutil.Exists(dest) {
		return services.Wrap(services.ErrInput, "pipeline", "write",
			fmt.Sprintf("destination %s appeared during the run; pass --overwrite to replace it", dest), nil)
	}
	if err := r.writeFile(dest, result.Document, documentMode); err != nil {
		return r.writeFailure(logger, dest, result, err)
	}
	result.Written = true
	logger.Info("tag document written",
		logging.String(logging.FieldEventType, "document_written"),
		logging.String("path", dest),
		logging.Int("bytes", len(result.Document)),
	)
	return nil
}

func (r *Runner) writeFailure(logger *slog.Logger, dest string, result *Result, err error) error {
	if fileutil.NonEmptyFile(dest) {
		result.PartialWrite = true
		result.Advisories = append(result.Advisories, fmt.Sprintf("%s may be partially written: %v", dest, err))
		logging.WarnWithContext(logger, "tag document partially written",
			"document_partial",
			logging.String("path", dest),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check free space and permissions, then rerun with --overwrite"),
			logging.String(logging.FieldImpact, "existing document left in place"),
		)
		return nil
	}
	return services.Wrap(services.ErrSerialization, "pipeline", "write", fmt.Sprintf("write %s", dest), err)
}

func (r *Runner) mux(ctx context.Context, logger *slog.Logger, req Request, result *Result) {
	if r.attacher == nil {
		result.Advisories = append(result.Advisories, "muxing disabled; tags left in "+req.Destination)
		return
	}
	tool := r.attacher.Tool()
	if !r.locator.Exists(tool) {
		advisory := fmt.Sprintf("%s not found; tags left in %s", tool, req.Destination)
		result.Advisories = append(result.Advisories, advisory)
		logging.WarnWithContext(logger, "mux tool unavailable",
			"mux_tool_missing",
			logging.String("tool", tool),
			logging.String(logging.FieldErrorHint, "install mkvtoolnix or set mux.tool"),
			logging.String(logging.FieldImpact, "container left untagged"),
		)
		return
	}
	if err := r.attacher.Attach(ctx, req.Container, req.Destination); err != nil {
		result.Advisories = append(result.Advisories, fmt.Sprintf("muxing into %s failed: %v", req.Container, err))
		logging.WarnWithContext(logger, "mux failed",
			"mux_failed",
			logging.String("container", req.Container),
			logging.Error(err),
			logging.String(logging.FieldImpact, "container left untagged; tag document kept"),
		)
		return
	}
	result.Muxed = true
	if req.KeepIntermediate {
		return
	}
	if err := os.Remove(req.Destination); err != nil {
		logger.Warn("remove intermediate tag document failed",
			logging.String(logging.FieldEventType, "intermediate_cleanup_failed"),
			logging.String("path", req.Destination),
			logging.Error(err),
		)
		return
	}
	result.Removed = true
}
