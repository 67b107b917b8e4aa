package identification

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"movietag/internal/logging"
)

// UndefinedTitle is returned by NormalizeTitle when no rule produces a usable title.
const UndefinedTitle = "undefined"

const (
	minYear = 1000
	maxYear = 9999
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	digitRunPattern   = regexp.MustCompile(`[0-9]+`)
)

var separatorReplacer = strings.NewReplacer(".", " ", "_", " ", ",", " ", "(", " ", ")", " ")

// SearchQuery is the title/year pair sent to the catalog search. Year is zero
// when unknown.
type SearchQuery struct {
	Title string
	Year  int
}

// NewSearchQuery validates and builds a SearchQuery.
func NewSearchQuery(title string, year int) (SearchQuery, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return SearchQuery{}, fmt.Errorf("search title must not be empty")
	}
	if year != 0 && (year < minYear || year > maxYear) {
		return SearchQuery{}, fmt.Errorf("year %d is not a 4-digit year", year)
	}
	return SearchQuery{Title: title, Year: year}, nil
}

// String renders the query for log and error messages.
func (q SearchQuery) String() string {
	if q.Year > 0 {
		return fmt.Sprintf("%s (%d)", q.Title, q.Year)
	}
	return q.Title
}

// NormalizeTitle parses a file-name leaf (extension already removed) into a
// clean search title and an optional year. Rules are tried in order and the
// first one producing a non-empty title wins:
//
//  1. the last 4-digit token not directly followed by "p" is the year and
//     everything before it is the title ("Ex.Machina.2014.2160p" -> "Ex Machina", 2014);
//     zero-padded runs such as "0042" are not years
//  2. everything before the first parenthesis or digit run is the title
//  3. the whole string is the title
//
// When nothing usable remains the result is UndefinedTitle with year 0.
func NormalizeTitle(rawLeaf string) (string, int) {
	if title, year, ok := titleBeforeYear(rawLeaf); ok {
		return title, year
	}
	if title, ok := titleBeforeMarker(rawLeaf); ok {
		return title, 0
	}
	if title := cleanTitle(rawLeaf); title != "" {
		return title, 0
	}
	return UndefinedTitle, 0
}

// SearchQueryFor derives the search query for a raw leaf. An undefined title
// is a warning, not a failure: the minimally cleaned leaf is used instead.
func SearchQueryFor(rawLeaf string, logger *slog.Logger) (SearchQuery, error) {
	title, year := NormalizeTitle(rawLeaf)
	if title == UndefinedTitle {
		logging.WarnWithContext(logger, "could not derive a title from file name",
			"title_undefined",
			logging.String("leaf", rawLeaf),
			logging.String(logging.FieldErrorHint, "pass --title to set the search title explicitly"),
			logging.String(logging.FieldImpact, "searching with the raw file name"),
		)
		title = strings.TrimSpace(rawLeaf)
		year = 0
	}
	return NewSearchQuery(title, year)
}

func titleBeforeYear(raw string) (string, int, bool) {
	runs := digitRunPattern.FindAllStringIndex(raw, -1)
	for i := len(runs) - 1; i >= 0; i-- {
		start, end := runs[i][0], runs[i][1]
		if end-start != 4 {
			continue
		}
		if end < len(raw) && raw[end] == 'p' {
			continue
		}
		year, err := strconv.Atoi(raw[start:end])
		if err != nil || year < minYear {
			continue
		}
		title := cleanTitle(raw[:start])
		if title == "" {
			return "", 0, false
		}
		return title, year, true
	}
	return "", 0, false
}

func titleBeforeMarker(raw string) (string, bool) {
	cut := -1
	if idx := strings.Index(raw, "("); idx >= 0 {
		cut = idx
	}
	if loc := digitRunPattern.FindStringIndex(raw); loc != nil && (cut < 0 || loc[0] < cut) {
		cut = loc[0]
	}
	if cut < 0 {
		return "", false
	}
	title := cleanTitle(raw[:cut])
	return title, title != ""
}

func cleanTitle(value string) string {
	cleaned := separatorReplacer.Replace(value)
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
