// Package importmap implements the prefix-rewrite table consulted by the
// resolver before any other resolution strategy. Only flat prefix
// remapping is supported; import-map scoping is out of scope.
package importmap

import (
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/fennec-run/fennec/internal/domain/modules"
)

// Entry is a single prefix-to-target rewrite.
type Entry struct {
	Prefix string
	Target string
}

// Map is an ordered list of rewrite entries, kept sorted by descending
// prefix length so the first textual match is always the longest (most
// specific) one.
type Map struct {
	entries []Entry
}

// New returns an empty import map.
func New() *Map {
	return &Map{}
}

// Insert adds a rewrite entry and re-sorts the table. The sort is stable,
// so insertion order is preserved among prefixes of equal length.
func (m *Map) Insert(prefix, target string) {
	m.entries = append(m.entries, Entry{Prefix: prefix, Target: target})
	sort.SliceStable(m.entries, func(i, j int) bool {
		return len(m.entries[i].Prefix) > len(m.entries[j].Prefix)
	})
}

// Resolve rewrites specifier using the first entry whose prefix matches
// textually. The second return is false when no entry matches, in which
// case the resolver falls through to its other strategies.
func (m *Map) Resolve(specifier string) (string, bool) {
	for _, entry := range m.entries {
		if strings.HasPrefix(specifier, entry.Prefix) {
			return entry.Target + specifier[len(entry.Prefix):], true
		}
	}
	return "", false
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the table in match order.
func (m *Map) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// ParseJSON builds a map from import-map JSON. The only recognized shape
// is a top-level "imports" object mapping string prefixes to string
// targets; unrecognized keys and non-string values are ignored.
// Structurally invalid JSON is a hard error.
func ParseJSON(data []byte) (*Map, error) {
	if !gjson.ValidBytes(data) {
		return nil, &modules.ParseError{Reason: "invalid import map JSON"}
	}

	m := New()
	imports := gjson.GetBytes(data, "imports")
	if imports.IsObject() {
		imports.ForEach(func(key, value gjson.Result) bool {
			if value.Type == gjson.String {
				m.Insert(key.String(), value.String())
			}
			return true
		})
	}
	return m, nil
}
