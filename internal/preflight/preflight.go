package preflight

import (
	"context"
	"os"

	"movietag/internal/config"
	"movietag/internal/identification"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the readiness checks behind `movietag doctor`: catalog
// reachability, the working directory, and the mux tool.
func RunAll(ctx context.Context, cfg *config.Config, searcher identification.Searcher) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckTMDB(ctx, searcher, identification.DefaultProbeTitle))

	if wd, err := os.Getwd(); err == nil {
		results = append(results, CheckDirectoryAccess("Working directory", wd))
	}

	for _, status := range CheckSystemDeps(cfg) {
		result := Result{Name: status.Name, Passed: status.Available || status.Optional, Detail: status.Detail}
		if status.Available {
			result.Detail = status.Command + " (found)"
		} else if status.Optional {
			result.Detail = status.Detail + "; muxing will be skipped"
		}
		results = append(results, result)
	}
	return results
}
