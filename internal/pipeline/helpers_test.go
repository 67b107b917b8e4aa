package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"movietag/internal/identification/tmdb"
	"movietag/internal/logging"
)

const (
	detailBody  = `{"id":264660,"title":"Ex Machina","imdb_id":"tt0470752","release_date":"2015-01-21","budget":15000000,"genres":[{"id":18,"name":"Drama"},{"id":878,"name":"Science Fiction"}]}`
	creditsBody = `{"id":264660,"cast":[{"name":"Domhnall Gleeson"},{"name":"Alicia Vikander"},{"name":"Oscar Isaac"}],"crew":[{"name":"Alex Garland","department":"Writing","job":"Writer"},{"name":"Alex Garland","department":"Directing","job":"Director"}]}`
)

type fakeTMDB struct {
	server   *httptest.Server
	requests atomic.Int64

	mu      sync.Mutex
	queries []string
	search  map[string]string
}

func newFakeTMDB(t *testing.T) *fakeTMDB {
	t.Helper()
	f := &fakeTMDB{search: map[string]string{
		"Ex Machina": `{"page":1,"results":[{"id":264660,"title":"Ex Machina","release_date":"2015-01-21"}]}`,
		"The Matrix": `{"page":1,"results":[{"id":603,"title":"The Matrix","release_date":"1999-03-30"}]}`,
	}}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/search/movie":
			q := r.URL.Query().Get("query")
			f.mu.Lock()
			f.queries = append(f.queries, q)
			body, ok := f.search[q]
			f.mu.Unlock()
			if !ok {
				body = `{"page":1,"results":[]}`
			}
			_, _ = w.Write([]byte(body))
		case r.URL.Path == "/movie/264660":
			_, _ = w.Write([]byte(detailBody))
		case r.URL.Path == "/movie/264660/credits":
			_, _ = w.Write([]byte(creditsBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeTMDB) client(t *testing.T) *tmdb.Client {
	t.Helper()
	client, err := tmdb.New("key", f.server.URL, "en-US")
	if err != nil {
		t.Fatalf("tmdb.New: %v", err)
	}
	return client
}

func (f *fakeTMDB) searched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

type fakeAttacher struct {
	tool  string
	err   error
	calls [][2]string
}

func (f *fakeAttacher) Attach(_ context.Context, containerPath, documentPath string) error {
	f.calls = append(f.calls, [2]string{containerPath, documentPath})
	return f.err
}

func (f *fakeAttacher) Tool() string {
	if strings.TrimSpace(f.tool) == "" {
		return "mkvpropedit"
	}
	return f.tool
}

func newTestRunner(t *testing.T, fake *fakeTMDB, opts ...Option) *Runner {
	t.Helper()
	base := []Option{
		WithLogger(logging.NewNop()),
		WithIDGenerator(func() string { return "run-1" }),
	}
	return NewRunner(fake.client(t), append(base, opts...)...)
}
