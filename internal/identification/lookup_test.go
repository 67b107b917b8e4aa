package identification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"movietag/internal/identification/tmdb"
	"movietag/internal/logging"
	"movietag/internal/services"
)

type stubSearcher struct {
	responses map[string]*tmdb.SearchResponse
	errs      map[string]error
	calls     []string
}

func (s *stubSearcher) SearchMovie(_ context.Context, query string) (*tmdb.SearchResponse, error) {
	s.calls = append(s.calls, query)
	if err := s.errs[query]; err != nil {
		return nil, err
	}
	if resp, ok := s.responses[query]; ok {
		return resp, nil
	}
	return &tmdb.SearchResponse{}, nil
}

func results(items ...tmdb.SearchResult) *tmdb.SearchResponse {
	return &tmdb.SearchResponse{Results: items, TotalResults: len(items)}
}

func TestResolveSingleCandidateIgnoresYear(t *testing.T) {
	searcher := &stubSearcher{responses: map[string]*tmdb.SearchResponse{
		"Ex Machina": results(tmdb.SearchResult{ID: 264660, Title: "Ex Machina", ReleaseDate: "2015-01-21"}),
	}}
	resolver := NewResolver(searcher, logging.NewNop())

	got, err := resolver.Resolve(context.Background(), SearchQuery{Title: "Ex Machina", Year: 1999})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.ID != 264660 || got.Advisory != "" || got.Candidates != 1 {
		t.Fatalf("unexpected resolution: %+v", got)
	}
}

func TestResolvePrefersYearMatch(t *testing.T) {
	searcher := &stubSearcher{responses: map[string]*tmdb.SearchResponse{
		"Dune": results(
			tmdb.SearchResult{ID: 438631, ReleaseDate: "2021-09-15"},
			tmdb.SearchResult{ID: 841, ReleaseDate: "1984-12-14"},
			tmdb.SearchResult{ID: 9999, ReleaseDate: "1984-01-01"},
		),
	}}
	resolver := NewResolver(searcher, logging.NewNop())

	got, err := resolver.Resolve(context.Background(), SearchQuery{Title: "Dune", Year: 1984})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.ID != 841 {
		t.Fatalf("expected first year match 841, got %d", got.ID)
	}
}

func TestResolveYearMismatchFallsBackToFirst(t *testing.T) {
	searcher := &stubSearcher{responses: map[string]*tmdb.SearchResponse{
		"Dune": results(
			tmdb.SearchResult{ID: 438631, ReleaseDate: "2021-09-15"},
			tmdb.SearchResult{ID: 841, ReleaseDate: "1984-12-14"},
		),
	}}
	resolver := NewResolver(searcher, logging.NewNop())

	got, err := resolver.Resolve(context.Background(), SearchQuery{Title: "Dune", Year: 1950})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.ID != 438631 || got.Advisory != "" {
		t.Fatalf("expected first candidate without advisory, got %+v", got)
	}
}

func TestResolveWithoutYearAddsAdvisory(t *testing.T) {
	searcher := &stubSearcher{responses: map[string]*tmdb.SearchResponse{
		"Dune": results(
			tmdb.SearchResult{ID: 438631, ReleaseDate: "2021-09-15"},
			tmdb.SearchResult{ID: 841, ReleaseDate: "1984-12-14"},
		),
	}}
	resolver := NewResolver(searcher, logging.NewNop())

	got, err := resolver.Resolve(context.Background(), SearchQuery{Title: "Dune"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.ID != 438631 {
		t.Fatalf("expected first candidate, got %d", got.ID)
	}
	if got.Advisory == "" {
		t.Fatal("expected imprecise-match advisory")
	}
}

func TestResolveEmptyWithHealthyProbeIsNotFound(t *testing.T) {
	searcher := &stubSearcher{responses: map[string]*tmdb.SearchResponse{
		DefaultProbeTitle: results(tmdb.SearchResult{ID: 603}),
	}}
	resolver := NewResolver(searcher, logging.NewNop())

	_, err := resolver.Resolve(context.Background(), SearchQuery{Title: "Zzzqx Nonexistent"})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, services.ErrTransport) {
		t.Fatalf("not-found must not be classified as transport: %v", err)
	}
	if !strings.Contains(err.Error(), "Zzzqx Nonexistent") {
		t.Fatalf("error should name the title: %v", err)
	}
	if len(searcher.calls) != 2 || searcher.calls[1] != DefaultProbeTitle {
		t.Fatalf("expected probe search, calls=%v", searcher.calls)
	}
}

func TestResolveEmptyWithEmptyProbeIsTransport(t *testing.T) {
	searcher := &stubSearcher{}
	resolver := NewResolver(searcher, logging.NewNop(), WithProbeTitle("Heat"))

	_, err := resolver.Resolve(context.Background(), SearchQuery{Title: "Anything"})
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if searcher.calls[1] != "Heat" {
		t.Fatalf("expected custom probe title, calls=%v", searcher.calls)
	}
}

func TestResolveEmptyWithFailingProbeIsTransport(t *testing.T) {
	searcher := &stubSearcher{errs: map[string]error{
		DefaultProbeTitle: errors.New("connection refused"),
	}}
	resolver := NewResolver(searcher, logging.NewNop())

	_, err := resolver.Resolve(context.Background(), SearchQuery{Title: "Anything"})
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestResolveSearchFailureIsTransport(t *testing.T) {
	searcher := &stubSearcher{errs: map[string]error{"Heat": errors.New("boom")}}
	resolver := NewResolver(searcher, logging.NewNop())

	_, err := resolver.Resolve(context.Background(), SearchQuery{Title: "Heat"})
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if len(searcher.calls) != 1 {
		t.Fatalf("search failure must not trigger a probe, calls=%v", searcher.calls)
	}
}
