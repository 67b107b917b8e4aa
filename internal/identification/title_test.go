package identification

import (
	"testing"

	"movietag/internal/logging"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		raw       string
		wantTitle string
		wantYear  int
	}{
		{"Ex.Machina.2014.2160p.BluRay", "Ex Machina", 2014},
		{"Ex Machina (2015)", "Ex Machina", 2015},
		{"The_Matrix_1999_1080p_x264", "The Matrix", 1999},
		{"2001.A.Space.Odyssey.1968", "2001 A Space Odyssey", 1968},
		{"Heat, 1995", "Heat", 1995},
		{"Alien.1080p.BluRay", "Alien", 0},
		{"Blade Runner (Final Cut)", "Blade Runner", 0},
		{"Se7en", "Se", 0},
		{"Ex Machina", "Ex Machina", 0},
		{"Arrival.", "Arrival", 0},
		{"1917", "1917", 0},
		{"Some.Movie.0042", "Some Movie", 0},
		{"Movie 0999 Cut", "Movie", 0},
		{"Metropolis.0042.1927", "Metropolis 0042", 1927},
		{"...___", UndefinedTitle, 0},
		{"", UndefinedTitle, 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			title, year := NormalizeTitle(tt.raw)
			if title != tt.wantTitle || year != tt.wantYear {
				t.Fatalf("NormalizeTitle(%q) = (%q, %d), want (%q, %d)", tt.raw, title, year, tt.wantTitle, tt.wantYear)
			}
		})
	}
}

func TestNormalizeTitleSkipsResolutionTokens(t *testing.T) {
	for _, raw := range []string{"Dune.2021.2160p", "Dune 2021 1080p WEB", "Dune_2021_0720p"} {
		title, year := NormalizeTitle(raw)
		if title != "Dune" || year != 2021 {
			t.Fatalf("NormalizeTitle(%q) = (%q, %d), want (Dune, 2021)", raw, title, year)
		}
	}
}

func TestSearchQueryForFallsBackToRawLeaf(t *testing.T) {
	query, err := SearchQueryFor(" ._ ", logging.NewNop())
	if err != nil {
		t.Fatalf("SearchQueryFor returned error: %v", err)
	}
	if query.Title != "._" || query.Year != 0 {
		t.Fatalf("unexpected fallback query: %+v", query)
	}
}

func TestSearchQueryForIgnoresZeroPaddedYear(t *testing.T) {
	for _, raw := range []string{"Some.Movie.0042", "Movie 0999 Cut"} {
		query, err := SearchQueryFor(raw, logging.NewNop())
		if err != nil {
			t.Fatalf("SearchQueryFor(%q) returned error: %v", raw, err)
		}
		if query.Year != 0 {
			t.Fatalf("SearchQueryFor(%q) year = %d, want 0", raw, query.Year)
		}
	}
}

func TestSearchQueryForRejectsBlankLeaf(t *testing.T) {
	if _, err := SearchQueryFor("   ", logging.NewNop()); err == nil {
		t.Fatal("expected error when nothing usable remains")
	}
}

func TestNewSearchQueryValidatesYear(t *testing.T) {
	if _, err := NewSearchQuery("Heat", 95); err == nil {
		t.Fatal("expected error for 2-digit year")
	}
	query, err := NewSearchQuery("  Heat ", 1995)
	if err != nil {
		t.Fatalf("NewSearchQuery returned error: %v", err)
	}
	if query.Title != "Heat" || query.String() != "Heat (1995)" {
		t.Fatalf("unexpected query: %+v %q", query, query.String())
	}
}
