package metadata

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"movietag/internal/services"
)

// Source names the catalog endpoint a field is read from.
type Source string

const (
	SourceDetail  Source = "detail"
	SourceCredits Source = "credits"
)

// Shape controls how a raw value is formatted.
type Shape string

const (
	ShapeScalar   Shape = "scalar"
	ShapeList     Shape = "list"
	ShapeCurrency Shape = "currency"
	ShapeDate     Shape = "date"
	// ShapeAuto infers the shape from the raw value at format time.
	ShapeAuto Shape = "auto"
)

// FieldSpec describes where a field comes from and how it is rendered.
type FieldSpec struct {
	Source      Source
	Path        string
	DisplayName string
	Shape       Shape
	Separator   string
	// ItemKeys are tried in order to pick a display string from each object
	// of a list-of-objects value.
	ItemKeys []string
}

// Category is a built-in field group that can be skipped.
type Category string

const (
	CategoryTMDbID    Category = "TMDbID"
	CategoryIMDbID    Category = "IMDbID"
	CategoryCast      Category = "Cast"
	CategoryWriters   Category = "Writers"
	CategoryDirectors Category = "Directors"
)

// Display names of the built-in categories.
const (
	NameTMDB       = "TMDB"
	NameIMDb       = "IMDb"
	NameCast       = "Cast"
	NameWrittenBy  = "Written By"
	NameDirectedBy = "Directed By"
)

// Limits on built-in credit lists.
const (
	maxCast      = 5
	maxWriters   = 3
	maxDirectors = 2
)

var categoryOrder = []Category{
	CategoryTMDbID,
	CategoryIMDbID,
	CategoryCast,
	CategoryWriters,
	CategoryDirectors,
}

var builtinSpecs = map[Category]FieldSpec{
	CategoryTMDbID:    {Source: SourceDetail, Path: "id", DisplayName: NameTMDB, Shape: ShapeScalar},
	CategoryIMDbID:    {Source: SourceDetail, Path: "imdb_id", DisplayName: NameIMDb, Shape: ShapeScalar},
	CategoryCast:      {Source: SourceCredits, Path: "cast[].name", DisplayName: NameCast, Shape: ShapeList, Separator: ListSeparator},
	CategoryWriters:   {Source: SourceCredits, Path: "crew[department=Writing]", DisplayName: NameWrittenBy, Shape: ShapeList, Separator: ListSeparator},
	CategoryDirectors: {Source: SourceCredits, Path: "crew[job=Director]", DisplayName: NameDirectedBy, Shape: ShapeList, Separator: ListSeparator},
}

var nameKeys = []string{"name"}

var extraSpecs = map[string]FieldSpec{
	"budget":                {Shape: ShapeCurrency},
	"revenue":               {Shape: ShapeCurrency},
	"genres":                {Shape: ShapeList, ItemKeys: nameKeys},
	"production_companies":  {Shape: ShapeList, ItemKeys: nameKeys},
	"production_countries":  {Shape: ShapeList, ItemKeys: nameKeys},
	"spoken_languages":      {Shape: ShapeList, ItemKeys: []string{"english_name", "name"}},
	"origin_country":        {Shape: ShapeList},
	"belongs_to_collection": {Shape: ShapeAuto, ItemKeys: nameKeys},
	"release_date":          {Shape: ShapeDate},
	"runtime":               {Shape: ShapeScalar},
	"tagline":               {Shape: ShapeScalar},
	"overview":              {Shape: ShapeScalar},
	"original_title":        {Shape: ShapeScalar},
	"original_language":     {Shape: ShapeScalar},
	"status":                {Shape: ShapeScalar},
	"homepage":              {Shape: ShapeScalar},
	"vote_average":          {Shape: ShapeScalar},
	"vote_count":            {Shape: ShapeScalar},
	"popularity":            {Shape: ShapeScalar},
}

// SkipSet is a set of built-in categories to leave out of a record.
type SkipSet map[Category]struct{}

// Has reports whether c is skipped.
func (s SkipSet) Has(c Category) bool {
	_, ok := s[c]
	return ok
}

// ParseCategory matches name against the built-in categories, ignoring case.
func ParseCategory(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range categoryOrder {
		if strings.EqualFold(name, string(c)) {
			return c, true
		}
	}
	return "", false
}

// ParseSkip builds a SkipSet from user-supplied names. Unknown names are an
// input error.
func ParseSkip(names []string) (SkipSet, error) {
	set := make(SkipSet, len(names))
	for _, raw := range names {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		c, ok := ParseCategory(raw)
		if !ok {
			return nil, services.Wrap(services.ErrInput, "metadata", "parse skip",
				fmt.Sprintf("unknown field category %q (valid: %s)", raw, strings.Join(CategoryNames(), ", ")), nil)
		}
		set[c] = struct{}{}
	}
	return set, nil
}

// CategoryNames lists the built-in categories in record order.
func CategoryNames() []string {
	names := make([]string, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		names = append(names, string(c))
	}
	return names
}

// BuiltinSpec returns the FieldSpec of a built-in category.
func BuiltinSpec(c Category) (FieldSpec, bool) {
	spec, ok := builtinSpecs[c]
	return spec, ok
}

// LookupField resolves a user-supplied property name to a FieldSpec. Names
// missing from the built-in table fall back to a generic detail lookup whose
// shape is inferred from the value.
func LookupField(name string) FieldSpec {
	key := strings.TrimSpace(name)
	if spec, ok := extraSpecs[strings.ToLower(key)]; ok {
		return completeSpec(strings.ToLower(key), spec)
	}
	return FieldSpec{
		Source:      SourceDetail,
		Path:        key,
		DisplayName: DisplayName(key),
		Shape:       ShapeAuto,
		Separator:   ListSeparator,
		ItemKeys:    []string{"name", "english_name", "title"},
	}
}

// ExtraFields returns the table of known extra fields sorted by path.
func ExtraFields() []FieldSpec {
	keys := make([]string, 0, len(extraSpecs))
	for key := range extraSpecs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	specs := make([]FieldSpec, 0, len(keys))
	for _, key := range keys {
		specs = append(specs, completeSpec(key, extraSpecs[key]))
	}
	return specs
}

// BuiltinFields returns the built-in category specs in record order.
func BuiltinFields() []FieldSpec {
	specs := make([]FieldSpec, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		specs = append(specs, builtinSpecs[c])
	}
	return specs
}

// DisplayName converts a payload key into a tag name: underscores become
// spaces and words are title-cased.
func DisplayName(key string) string {
	words := strings.Fields(strings.ReplaceAll(strings.TrimSpace(key), "_", " "))
	return cases.Title(language.English).String(strings.Join(words, " "))
}

func completeSpec(key string, spec FieldSpec) FieldSpec {
	spec.Source = SourceDetail
	spec.Path = key
	spec.DisplayName = DisplayName(key)
	if spec.Separator == "" {
		spec.Separator = ListSeparator
	}
	return spec
}
