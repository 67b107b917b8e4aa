package metadata

import (
	"errors"
	"testing"

	"movietag/internal/services"
)

func TestParseSkipIsCaseInsensitive(t *testing.T) {
	set, err := ParseSkip([]string{"cast", "IMDBID", " Writers ", ""})
	if err != nil {
		t.Fatalf("ParseSkip returned error: %v", err)
	}
	for _, c := range []Category{CategoryCast, CategoryIMDbID, CategoryWriters} {
		if !set.Has(c) {
			t.Fatalf("expected %s in skip set", c)
		}
	}
	if set.Has(CategoryDirectors) || set.Has(CategoryTMDbID) {
		t.Fatal("unexpected categories in skip set")
	}
}

func TestParseSkipRejectsUnknown(t *testing.T) {
	_, err := ParseSkip([]string{"Composers"})
	if !errors.Is(err, services.ErrInput) {
		t.Fatalf("expected ErrInput, got %v", err)
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"budget":               "Budget",
		"production_companies": "Production Companies",
		"vote_average":         "Vote Average",
		" spoken__languages ":  "Spoken Languages",
		"Release_Date":         "Release Date",
	}
	for in, want := range tests {
		if got := DisplayName(in); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLookupField(t *testing.T) {
	spec := LookupField("Budget")
	if spec.Shape != ShapeCurrency || spec.Path != "budget" || spec.DisplayName != "Budget" {
		t.Fatalf("unexpected budget spec: %+v", spec)
	}
	spec = LookupField("spoken_languages")
	if spec.Shape != ShapeList || spec.ItemKeys[0] != "english_name" {
		t.Fatalf("unexpected spoken_languages spec: %+v", spec)
	}
	spec = LookupField("custom_key")
	if spec.Shape != ShapeAuto || spec.Path != "custom_key" || spec.Source != SourceDetail {
		t.Fatalf("unexpected fallback spec: %+v", spec)
	}
}

func TestBuiltinFieldsOrder(t *testing.T) {
	specs := BuiltinFields()
	want := []string{NameTMDB, NameIMDb, NameCast, NameWrittenBy, NameDirectedBy}
	if len(specs) != len(want) {
		t.Fatalf("expected %d builtins, got %d", len(want), len(specs))
	}
	for i, spec := range specs {
		if spec.DisplayName != want[i] {
			t.Fatalf("builtin %d = %q, want %q", i, spec.DisplayName, want[i])
		}
	}
	if len(ExtraFields()) == 0 {
		t.Fatal("expected extra field table")
	}
}
