package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"movietag/internal/config"
	"movietag/internal/deps"
	"movietag/internal/fileutil"
	"movietag/internal/identification"
)

// CheckTMDB verifies that the catalog answers a search for a well-known title.
// It uses a 15-second timeout and a single attempt.
func CheckTMDB(ctx context.Context, searcher identification.Searcher, probeTitle string) Result {
	const name = "TMDB API"
	if searcher == nil {
		return Result{Name: name, Detail: "client unavailable (check tmdb.api_key)"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	resp, err := searcher.SearchMovie(checkCtx, probeTitle)
	if err != nil {
		return Result{Name: name, Detail: summarizeTMDBError(err)}
	}
	if resp == nil || len(resp.Results) == 0 {
		return Result{Name: name, Detail: fmt.Sprintf("search for %q returned nothing (invalid api key?)", probeTitle)}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

// CheckDirectoryAccess verifies that the directory exists and is writable.
func CheckDirectoryAccess(name, path string) Result {
	if err := fileutil.CheckDirWritable(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates the external executables movietag can use.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "mkvpropedit",
			Command:     cfg.MuxBinary(),
			Description: "Attaches tag documents to MKV containers",
			Optional:    true,
		},
	}
	return deps.CheckBinaries(requirements)
}

// summarizeTMDBError produces a human-readable summary for catalog check failures.
func summarizeTMDBError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "search timed out (TMDB unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "search timed out (TMDB unreachable)"
	}
	return err.Error()
}
