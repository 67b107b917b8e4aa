package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	server     *httptest.Server
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("TMDB_API_KEY", "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search/movie":
			if r.URL.Query().Get("query") == "Ex Machina" {
				_, _ = w.Write([]byte(`{"results":[{"id":264660,"title":"Ex Machina","release_date":"2015-01-21"}]}`))
				return
			}
			_, _ = w.Write([]byte(`{"results":[]}`))
		case "/movie/264660":
			_, _ = w.Write([]byte(`{"id":264660,"title":"Ex Machina","imdb_id":"tt0470752","budget":15000000}`))
		case "/movie/264660/credits":
			_, _ = w.Write([]byte(`{"cast":[{"name":"Domhnall Gleeson"},{"name":"Alicia Vikander"}],"crew":[{"name":"Alex Garland","department":"Writing","job":"Writer"},{"name":"Alex Garland","department":"Directing","job":"Director"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[tmdb]
api_key = "test"
base_url = %q

[logging]
level = "error"
`, server.URL)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{server: server, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
