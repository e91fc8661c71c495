package extractor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// FuzzExtract checks that arbitrary source never panics and that every
// reported specifier is a verbatim, quote-free substring of the input.
func FuzzExtract(f *testing.F) {
	f.Add(`import { a } from './a.js';`)
	f.Add(`import('./b.js')`)
	f.Add(`export * from "c"`)
	f.Add(`import from from 'from'`)
	f.Add("")

	f.Fuzz(func(t *testing.T, source string) {
		deps := Extract(source)
		for _, dep := range deps {
			require.Contains(t, source, dep)
			require.NotContains(t, dep, `'`)
			require.NotContains(t, dep, `"`)
		}
	})
}
