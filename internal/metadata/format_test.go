package metadata

import (
	"encoding/json"
	"errors"
	"testing"

	"movietag/internal/services"
)

func TestFormatField(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		raw     any
		want    string
		present bool
	}{
		{"currency", "budget", json.Number("15000000"), "$15,000,000", true},
		{"currency float", "revenue", 36869414.0, "$36,869,414", true},
		{"currency zero", "budget", json.Number("0"), "", false},
		{"date", "release_date", "2015-01-21", "2015-01-21", true},
		{"date unparsable", "release_date", "Jan 2015", "Jan 2015", true},
		{"date empty", "release_date", "", "", false},
		{"list of objects", "genres", []any{
			map[string]any{"id": json.Number("18"), "name": "Drama"},
			map[string]any{"id": json.Number("878"), "name": "Science Fiction"},
		}, "Drama, Science Fiction", true},
		{"list english names", "spoken_languages", []any{
			map[string]any{"english_name": "English", "name": "English"},
			map[string]any{"english_name": "Japanese", "name": "日本語"},
		}, "English, Japanese", true},
		{"empty list", "genres", []any{}, "", false},
		{"scalar number", "runtime", json.Number("108"), "108", true},
		{"scalar string", "tagline", " There is nothing more human. ", "There is nothing more human.", true},
		{"scalar blank", "tagline", "   ", "", false},
		{"generic object", "belongs_to_collection", map[string]any{"name": "Dune Collection"}, "Dune Collection", true},
		{"generic bool", "adult", false, "false", true},
		{"generic string list", "origin_country", []any{"GB", "US"}, "GB, US", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, present, err := formatField(LookupField(tt.field), tt.raw)
			if err != nil {
				t.Fatalf("formatField returned error: %v", err)
			}
			if present != tt.present {
				t.Fatalf("present = %v, want %v", present, tt.present)
			}
			if present && value.String() != tt.want {
				t.Fatalf("value = %q, want %q", value.String(), tt.want)
			}
		})
	}
}

func TestFormatFieldShapeMismatchIsPartial(t *testing.T) {
	_, _, err := formatField(LookupField("budget"), "lots")
	if !errors.Is(err, services.ErrPartialField) {
		t.Fatalf("expected ErrPartialField, got %v", err)
	}
	_, _, err = formatField(LookupField("mystery"), map[string]any{"id": json.Number("1")})
	if !errors.Is(err, services.ErrPartialField) {
		t.Fatalf("expected ErrPartialField for nameless object, got %v", err)
	}
}

func TestFormatCurrency(t *testing.T) {
	if got := FormatCurrency(1234); got != "$1,234" {
		t.Fatalf("FormatCurrency(1234) = %q", got)
	}
	if got := FormatCurrency(-5000); got != "-$5,000" {
		t.Fatalf("FormatCurrency(-5000) = %q", got)
	}
}

func TestFormatListCustomSeparator(t *testing.T) {
	spec := FieldSpec{Path: "genres", Shape: ShapeList, Separator: " / ", ItemKeys: []string{"name"}}
	value, present, err := formatField(spec, []any{map[string]any{"name": "A"}, map[string]any{"name": "B"}})
	if err != nil || !present {
		t.Fatalf("unexpected result present=%v err=%v", present, err)
	}
	if value.IsList() || value.String() != "A / B" {
		t.Fatalf("expected joined text, got %q", value.String())
	}
}
