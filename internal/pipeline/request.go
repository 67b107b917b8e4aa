package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"movietag/internal/identification"
	"movietag/internal/metadata"
)

// DocumentExt is the extension of generated tag documents.
const DocumentExt = ".xml"

// Request holds the inputs of one tagging run.
type Request struct {
	// Destination is where the tag document is written.
	Destination string
	// Container is an optional Matroska file to attach the tags to.
	Container string
	// Title and Year override the values parsed from the file name.
	Title string
	Year  int
	// Skip lists built-in categories to leave out.
	Skip []string
	// Properties lists extra detail fields to include, in output order.
	Properties []string

	Overwrite        bool
	KeepIntermediate bool
	DryRun           bool
}

// Result describes what a run produced.
type Result struct {
	CorrelationID string
	Query         identification.SearchQuery
	Resolution    identification.Resolution
	Record        *metadata.Record
	Document      []byte
	DocumentPath  string

	Written      bool
	PartialWrite bool
	Muxed        bool
	Removed      bool
	Advisories   []string
}

// DefaultDestination returns the tag document path that sits next to a
// container: "Movie (2015).mkv" becomes "Movie (2015).xml".
func DefaultDestination(container string) string {
	container = strings.TrimSpace(container)
	if container == "" {
		return ""
	}
	return strings.TrimSuffix(container, filepath.Ext(container)) + DocumentExt
}

// searchLeaf picks the file-name leaf the title is parsed from: the container
// when present, else the destination. The extension is removed.
func (r Request) searchLeaf() string {
	source := strings.TrimSpace(r.Container)
	if source == "" {
		source = strings.TrimSpace(r.Destination)
	}
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (r Request) validateYear() error {
	if r.Year == 0 {
		return nil
	}
	if r.Year < 1000 || r.Year > 9999 {
		return fmt.Errorf("year %d is not a 4-digit year", r.Year)
	}
	return nil
}
