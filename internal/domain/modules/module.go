// Package modules defines the value types exchanged between the resolver,
// the loader, and the embedding script engine, together with the error
// taxonomy for module loading.
package modules

import (
	"path"
	"strings"
)

// Type classifies a module by its file extension.
type Type int

const (
	// TypeUnknown is used for extensions the runtime does not recognize.
	TypeUnknown Type = iota
	// TypeESModule is an ES module (.js, .mjs).
	TypeESModule
	// TypeCommonJS is a CommonJS module (.cjs).
	TypeCommonJS
	// TypeJSON is a JSON module (.json).
	TypeJSON
	// TypeTypeScript is a TypeScript module (.ts).
	TypeTypeScript
)

// String returns a human-readable name for the module type.
func (t Type) String() string {
	switch t {
	case TypeESModule:
		return "esm"
	case TypeCommonJS:
		return "commonjs"
	case TypeJSON:
		return "json"
	case TypeTypeScript:
		return "typescript"
	default:
		return "unknown"
	}
}

// TypeFromExtension derives the module type from a file extension,
// including the leading dot. Plain .js defaults to ES module.
func TypeFromExtension(ext string) Type {
	switch strings.ToLower(ext) {
	case ".mjs", ".js":
		return TypeESModule
	case ".cjs":
		return TypeCommonJS
	case ".json":
		return TypeJSON
	case ".ts":
		return TypeTypeScript
	default:
		return TypeUnknown
	}
}

// TypeFromSpecifier derives the module type from the extension of a path
// or URL specifier. A specifier without an extension defaults to ES
// module.
func TypeFromSpecifier(specifier string) Type {
	ext := path.Ext(specifier)
	if ext == "" {
		return TypeESModule
	}
	return TypeFromExtension(ext)
}

// Source is a loaded module: its canonical specifier, source text, and
// type.
type Source struct {
	Specifier string
	Code      string
	Type      Type
}

// ResolvedModule is the record stored in the module cache and returned to
// the engine: a source plus the raw, unresolved specifiers it imports.
// Dependencies are in order of first occurrence and are not deduplicated;
// each is a candidate for a future resolve call when the engine builds
// the full module graph.
type ResolvedModule struct {
	Specifier    string
	Source       Source
	Dependencies []string
}
