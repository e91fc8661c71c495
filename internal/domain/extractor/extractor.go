// Package extractor performs a best-effort static scan of module source
// text for import and export specifier literals. It is intentionally not
// a parser: dependency lists are syntactically triggered, so literals
// inside strings or comments can produce false positives and non-standard
// import syntax can be missed.
package extractor

import (
	"regexp"
	"sort"
)

// The three recognized syntactic shapes. Side-effect imports without a
// "from" clause are not recognized.
var specifierPatterns = []*regexp.Regexp{
	// import { x } from './mod.js'
	regexp.MustCompile(`import\s+[^'"]*?from\s+['"]([^'"]+)['"]`),
	// import('./mod.js')
	regexp.MustCompile(`import\s*\(\s*['"]([^'"]+)['"]`),
	// export { x } from './mod.js'
	regexp.MustCompile(`export\s+[^'"]*?from\s+['"]([^'"]+)['"]`),
}

// Extract returns the raw specifier strings referenced by source, in
// order of first occurrence. Duplicates are preserved; callers that need
// a deduplicated edge list do it themselves.
func Extract(source string) []string {
	type match struct {
		offset    int
		specifier string
	}

	var matches []match
	for _, pattern := range specifierPatterns {
		for _, loc := range pattern.FindAllStringSubmatchIndex(source, -1) {
			// loc[2]:loc[3] is the first capture group.
			matches = append(matches, match{
				offset:    loc[2],
				specifier: source[loc[2]:loc[3]],
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].offset < matches[j].offset
	})

	specifiers := make([]string, len(matches))
	for i, m := range matches {
		specifiers[i] = m.specifier
	}
	return specifiers
}
