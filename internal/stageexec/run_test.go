package stageexec

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"movietag/internal/logging"
	"movietag/internal/services"
)

func TestRunAnnotatesStage(t *testing.T) {
	var seen string
	err := Run(context.Background(), Options{
		Logger:    logging.NewNop(),
		StageName: "resolve",
		Run: func(ctx context.Context, _ *slog.Logger) error {
			seen, _ = services.StageFromContext(ctx)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if seen != "resolve" {
		t.Fatalf("expected stage in context, got %q", seen)
	}
}

func TestRunPropagatesError(t *testing.T) {
	want := services.Wrap(services.ErrNotFound, "resolver", "search", "no match", nil)
	err := Run(context.Background(), Options{
		StageName: "resolve",
		Run: func(context.Context, *slog.Logger) error {
			return want
		},
	})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected wrapped not-found error, got %v", err)
	}
}

func TestRunRequiresHandler(t *testing.T) {
	if err := Run(context.Background(), Options{StageName: "mux"}); err == nil {
		t.Fatal("expected error for missing handler")
	}
}

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"":          "",
		"resolve":   "Resolve",
		"tag_write": "Tag Write",
		"MUX":       "Mux",
		"__write__": "Write",
	}
	for in, want := range tests {
		if got := Label(in); got != want {
			t.Errorf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}
