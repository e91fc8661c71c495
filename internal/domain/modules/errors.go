package modules

import "fmt"

// NotFoundError indicates that resolution exhausted every candidate
// location without finding the module.
type NotFoundError struct {
	Specifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("module not found: cannot find module %q", e.Specifier)
}

// ResolutionError indicates malformed resolution input or an I/O failure
// while resolving or reading a module.
type ResolutionError struct {
	Specifier string
	Err       error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to resolve module %q: %v", e.Specifier, e.Err)
	}
	return fmt.Sprintf("failed to resolve module %q", e.Specifier)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ParseError indicates structurally invalid input, such as malformed
// import-map JSON.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse error: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// PermissionDeniedError indicates a capability check failure, or a module
// source class that the loader configuration forbids outright. When the
// failure came from a capability check, Err wraps the underlying
// permissions error carrying the category and resource.
type PermissionDeniedError struct {
	Reason string
	Err    error
}

func (e *PermissionDeniedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("permission denied: %v", e.Err)
	}
	return fmt.Sprintf("permission denied: %s", e.Reason)
}

func (e *PermissionDeniedError) Unwrap() error { return e.Err }

// NetworkError indicates a remote fetch failure, including the case where
// no remote fetcher is configured at all.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network error loading %q: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("network error loading %q", e.URL)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// CircularDependencyError indicates an import cycle detected via the
// loading set. Cyclic module graphs are out of scope for the loader's
// guarantees and are reported, never partially resolved.
type CircularDependencyError struct {
	Specifier string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected: %q", e.Specifier)
}

// InvalidSpecifierError indicates a malformed URL or specifier string.
type InvalidSpecifierError struct {
	Specifier string
}

func (e *InvalidSpecifierError) Error() string {
	return fmt.Sprintf("invalid module specifier: %q", e.Specifier)
}
