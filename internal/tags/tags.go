package tags

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"movietag/internal/metadata"
	"movietag/internal/services"
)

// Header is the XML declaration written at the top of every document.
const Header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Simple is one name/value pair of a tag document.
type Simple struct {
	Name   string `xml:"Name"`
	String string `xml:"String"`
}

type tag struct {
	Simples []Simple `xml:"Simple"`
}

type document struct {
	XMLName xml.Name `xml:"Tags"`
	Tag     tag      `xml:"Tag"`
}

// FromRecord projects a record onto tag entries, joining list values with
// metadata.ListSeparator.
func FromRecord(record *metadata.Record) []Simple {
	entries := record.Entries()
	out := make([]Simple, 0, len(entries))
	for _, entry := range entries {
		out = append(out, Simple{Name: entry.Name, String: entry.Value.String()})
	}
	return out
}

// Serialize renders entries as a Matroska global tag document. The output
// depends only on the entries and their order. Characters XML 1.0 cannot
// carry (most C0 controls, U+FFFE, U+FFFF, invalid UTF-8) are dropped, so
// Parse returns exactly the cleaned entries.
func Serialize(entries []Simple) ([]byte, error) {
	simples := make([]Simple, 0, len(entries))
	for _, entry := range entries {
		simples = append(simples, Simple{Name: CleanText(entry.Name), String: CleanText(entry.String)})
	}
	doc := document{Tag: tag{Simples: simples}}
	b, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, services.Wrap(services.ErrSerialization, "tags", "serialize", "marshal document", err)
	}
	out := make([]byte, 0, len(Header)+len(b)+1)
	out = append(out, Header...)
	out = append(out, b...)
	out = append(out, '\n')
	return out, nil
}

// CleanText removes characters that are not allowed in XML 1.0 character data.
func CleanText(s string) string {
	s = strings.ToValidUTF8(s, "")
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, s)
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= unicode.MaxRune:
		return true
	}
	return false
}

// SerializeRecord is Serialize(FromRecord(record)).
func SerializeRecord(record *metadata.Record) ([]byte, error) {
	if record == nil {
		return nil, services.Wrap(services.ErrSerialization, "tags", "serialize", "record is nil", nil)
	}
	return Serialize(FromRecord(record))
}

// Parse reads a tag document back into entries in document order.
func Parse(data []byte) ([]Simple, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("tag document is empty")
	}
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse tag document: %w", err)
	}
	return doc.Tag.Simples, nil
}
