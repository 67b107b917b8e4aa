package stageexec

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"movietag/internal/logging"
	"movietag/internal/services"
)

// Func is the body of a pipeline stage. It receives a context annotated with
// the stage name.
type Func func(ctx context.Context, logger *slog.Logger) error

// Options controls stage execution.
type Options struct {
	Logger    *slog.Logger
	StageName string
	Run       Func
}

// Run executes one stage with start, completion, and failure logging.
func Run(ctx context.Context, opts Options) error {
	if opts.Run == nil {
		return fmt.Errorf("stage handler unavailable: %s", opts.StageName)
	}

	stageCtx := services.WithStage(ctx, opts.StageName)
	stageLogger := logging.WithContext(stageCtx, opts.Logger)

	stageLogger.Debug(
		"stage started",
		logging.String(logging.FieldEventType, "stage_start"),
		logging.String("stage_label", Label(opts.StageName)),
	)
	started := time.Now()

	if err := opts.Run(stageCtx, stageLogger); err != nil {
		stageLogger.Error(
			"stage failed",
			logging.String(logging.FieldEventType, "stage_failure"),
			logging.String("error_message", strings.TrimSpace(err.Error())),
			logging.Duration("elapsed", time.Since(started)),
			logging.Int("exit_code", services.ExitCode(err)),
		)
		return err
	}

	stageLogger.Debug(
		"stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Duration("elapsed", time.Since(started)),
	)
	return nil
}

// Label converts a stage identifier such as "tag_write" into "Tag Write".
func Label(stage string) string {
	if stage == "" {
		return ""
	}
	words := strings.Join(strings.Fields(strings.ReplaceAll(stage, "_", " ")), " ")
	return cases.Title(language.English).String(words)
}
