package mux

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"movietag/internal/logging"
	"movietag/internal/services"
)

func writeFixture(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestBuildArgs(t *testing.T) {
	got := BuildArgs("/media/Ex Machina.mkv", "/tmp/tags.xml")
	want := []string{"/media/Ex Machina.mkv", "--tags", "global:/tmp/tags.xml"}
	if !slices.Equal(got, want) {
		t.Fatalf("BuildArgs() = %v, want %v", got, want)
	}
}

func TestAttachRunsTool(t *testing.T) {
	dir := t.TempDir()
	container := writeFixture(t, dir, "movie.mkv")
	document := writeFixture(t, dir, "movie.xml")

	var gotName string
	var gotArgs []string
	m := NewMuxer("", logging.NewNop())
	m.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	})

	if err := m.Attach(context.Background(), container, document); err != nil {
		t.Fatalf("Attach returned error: %v", err)
	}
	if gotName != DefaultTool {
		t.Fatalf("expected %s, got %s", DefaultTool, gotName)
	}
	if !slices.Equal(gotArgs, BuildArgs(container, document)) {
		t.Fatalf("unexpected args: %v", gotArgs)
	}
}

func TestAttachWrapsToolFailure(t *testing.T) {
	dir := t.TempDir()
	container := writeFixture(t, dir, "movie.mkv")
	document := writeFixture(t, dir, "movie.xml")

	m := NewMuxer("/opt/mkvtoolnix/mkvpropedit", logging.NewNop())
	m.WithCommandRunner(func(context.Context, string, ...string) error {
		return errors.New("exit status 2")
	})

	err := m.Attach(context.Background(), container, document)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if m.Tool() != "/opt/mkvtoolnix/mkvpropedit" {
		t.Fatalf("unexpected tool: %s", m.Tool())
	}
}

func TestAttachRequiresExistingFiles(t *testing.T) {
	dir := t.TempDir()
	document := writeFixture(t, dir, "movie.xml")

	called := false
	m := NewMuxer("", logging.NewNop())
	m.WithCommandRunner(func(context.Context, string, ...string) error {
		called = true
		return nil
	})

	if err := m.Attach(context.Background(), filepath.Join(dir, "missing.mkv"), document); err == nil {
		t.Fatal("expected error for missing container")
	}
	if err := m.Attach(context.Background(), "", document); err == nil {
		t.Fatal("expected error for empty container path")
	}
	if called {
		t.Fatal("runner must not be invoked when inputs are missing")
	}
}
