package importmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fennec-run/fennec/internal/domain/modules"
)

func TestMap_Resolve(t *testing.T) {
	m := New()
	m.Insert("lodash/", "https://cdn.example.com/lodash/")

	resolved, ok := m.Resolve("lodash/map")
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/lodash/map", resolved)

	_, ok = m.Resolve("react")
	assert.False(t, ok)
}

func TestMap_LongestPrefixWins(t *testing.T) {
	tests := []struct {
		name      string
		insertion [][2]string
		specifier string
		expected  string
	}{
		{
			name:      "longer prefix inserted second",
			insertion: [][2]string{{"a/", "X"}, {"a/b/", "Y"}},
			specifier: "a/b/c",
			expected:  "Yc",
		},
		{
			name:      "longer prefix inserted first",
			insertion: [][2]string{{"a/b/", "Y"}, {"a/", "X"}},
			specifier: "a/b/c",
			expected:  "Yc",
		},
		{
			name:      "shorter prefix still matches elsewhere",
			insertion: [][2]string{{"a/", "X"}, {"a/b/", "Y"}},
			specifier: "a/z",
			expected:  "Xz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			for _, ins := range tt.insertion {
				m.Insert(ins[0], ins[1])
			}
			resolved, ok := m.Resolve(tt.specifier)
			require.True(t, ok)
			assert.Equal(t, tt.expected, resolved)
		})
	}
}

func TestMap_EqualLengthPrefixesKeepInsertionOrder(t *testing.T) {
	m := New()
	m.Insert("ab", "FIRST")
	m.Insert("ab", "SECOND")

	resolved, ok := m.Resolve("abc")
	require.True(t, ok)
	assert.Equal(t, "FIRSTc", resolved)
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		entries int
	}{
		{
			name:    "single import",
			json:    `{"imports": {"react": "https://cdn.example.com/react.js"}}`,
			entries: 1,
		},
		{
			name:    "multiple imports",
			json:    `{"imports": {"a/": "X", "a/b/": "Y"}}`,
			entries: 2,
		},
		{
			name:    "missing imports key",
			json:    `{"scopes": {"./": {}}}`,
			entries: 0,
		},
		{
			name:    "imports is not an object",
			json:    `{"imports": ["a", "b"]}`,
			entries: 0,
		},
		{
			name:    "non-string values are skipped",
			json:    `{"imports": {"a": "X", "b": 42, "c": {"nested": true}}}`,
			entries: 1,
		},
		{
			name:    "unrecognized top-level keys are ignored",
			json:    `{"imports": {"a": "X"}, "integrity": {}, "scopes": {}}`,
			entries: 1,
		},
		{
			name:    "empty object",
			json:    `{}`,
			entries: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseJSON([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.entries, m.Len())
		})
	}
}

func TestParseJSON_ResolvesParsedEntries(t *testing.T) {
	m, err := ParseJSON([]byte(`{"imports": {"react": "https://cdn.example.com/react.js"}}`))
	require.NoError(t, err)

	resolved, ok := m.Resolve("react")
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/react.js", resolved)
}

func TestParseJSON_InvalidJSONIsHardError(t *testing.T) {
	tests := []string{
		`{"imports": {`,
		`not json at all`,
		`{"imports": {"a": "X"}`,
		``,
	}

	for _, input := range tests {
		_, err := ParseJSON([]byte(input))
		require.Error(t, err, "input: %s", input)

		var parseErr *modules.ParseError
		assert.True(t, errors.As(err, &parseErr))
	}
}

func TestMap_EntriesReturnsCopy(t *testing.T) {
	m := New()
	m.Insert("a", "X")

	entries := m.Entries()
	entries[0].Target = "MUTATED"

	resolved, ok := m.Resolve("a")
	require.True(t, ok)
	assert.Equal(t, "X", resolved)
}
