package metadata

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ListSeparator joins list values when a record is rendered as text.
const ListSeparator = ", "

// ErrDuplicateField is returned by Record.Add when the display name is taken.
var ErrDuplicateField = errors.New("duplicate field")

// Value is either a single string or an ordered list of strings.
type Value struct {
	text  string
	items []string
	list  bool
}

// Text builds a scalar value.
func Text(s string) Value {
	return Value{text: s}
}

// List builds a list value. The items are copied.
func List(items ...string) Value {
	return Value{items: slices.Clone(items), list: true}
}

// IsList reports whether the value holds a list.
func (v Value) IsList() bool { return v.list }

// Items returns the list items, or the scalar as a one-element slice.
func (v Value) Items() []string {
	if !v.list {
		return []string{v.text}
	}
	return slices.Clone(v.items)
}

// String renders the value, joining lists with ListSeparator.
func (v Value) String() string {
	if v.list {
		return strings.Join(v.items, ListSeparator)
	}
	return v.text
}

// Entry is one named value in a Record.
type Entry struct {
	Name  string
	Value Value
}

// Record is an ordered set of uniquely named metadata values. Insertion order
// is output order.
type Record struct {
	entries []Entry
	index   map[string]int
}

// NewRecord returns an empty Record.
func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

// Add appends a value under name. A name already present is rejected with
// ErrDuplicateField and the existing value is kept.
func (r *Record) Add(name string, value Value) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("field name must not be empty")
	}
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if _, exists := r.index[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateField, name)
	}
	r.index[name] = len(r.entries)
	r.entries = append(r.entries, Entry{Name: name, Value: value})
	return nil
}

// Get returns the value stored under name.
func (r *Record) Get(name string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	i, ok := r.index[name]
	if !ok {
		return Value{}, false
	}
	return r.entries[i].Value, true
}

// Has reports whether name is present.
func (r *Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Entries returns a copy of the entries in insertion order.
func (r *Record) Entries() []Entry {
	if r == nil {
		return nil
	}
	return slices.Clone(r.entries)
}

// Keys returns the display names in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, len(r.entries))
	for _, entry := range r.entries {
		keys = append(keys, entry.Name)
	}
	return keys
}

// Len returns the number of entries. A nil record is empty.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}
