// Package resolver turns raw module specifiers into canonical specifiers:
// absolute paths or URLs usable as cache keys. Resolution consults the
// import map first, then falls through to URL, absolute-path, relative-path,
// and bare-specifier strategies in that order.
package resolver

import (
	"os"
	"path"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/fennec-run/fennec/internal/domain/importmap"
	"github.com/fennec-run/fennec/internal/domain/modules"
)

// Probe suffixes for bare-specifier search. The ordering is part of the
// resolution contract and must not change.
var bareProbeSuffixes = []string{".js", ".mjs", ".ts", "/index.js", "/index.mjs"}

// Config controls resolution behavior.
type Config struct {
	// BaseDir anchors relative resolution without a referrer and the
	// bare-specifier ancestor walk. Defaults to the working directory.
	BaseDir string

	// AllowRemote enables http/https specifiers. When false, resolving a
	// URL fails with a permission error before any network activity.
	AllowRemote bool

	// ImportMap, when non-nil, is consulted before every other strategy.
	ImportMap *importmap.Map
}

// Resolver resolves specifiers against a fixed configuration. It is
// read-only after construction and safe for concurrent use.
type Resolver struct {
	cfg Config

	// Filesystem seams for the bare-specifier probe, replaceable in tests.
	stat     func(string) (os.FileInfo, error)
	readFile func(string) ([]byte, error)
}

// New creates a resolver. An empty BaseDir falls back to the working
// directory, or "/" when even that is unavailable.
func New(cfg Config) *Resolver {
	if cfg.BaseDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfg.BaseDir = cwd
		} else {
			cfg.BaseDir = "/"
		}
	}
	return &Resolver{
		cfg:      cfg,
		stat:     os.Stat,
		readFile: os.ReadFile,
	}
}

// BaseDir returns the directory anchoring relative and bare resolution.
func (r *Resolver) BaseDir() string {
	return r.cfg.BaseDir
}

// Resolve turns specifier into a canonical specifier. referrer is the
// specifier of the importing module, or empty when there is none.
func (r *Resolver) Resolve(specifier, referrer string) (string, error) {
	if specifier == "" {
		return "", &modules.InvalidSpecifierError{Specifier: specifier}
	}

	// Import map rewrites win over everything else.
	if r.cfg.ImportMap != nil {
		if rewritten, ok := r.cfg.ImportMap.Resolve(specifier); ok {
			return rewritten, nil
		}
	}

	if strings.HasPrefix(specifier, "https://") || strings.HasPrefix(specifier, "http://") {
		if !r.cfg.AllowRemote {
			return "", &modules.PermissionDeniedError{Reason: "remote modules are disabled"}
		}
		// Host-level permission is checked at load time, not here.
		return specifier, nil
	}

	if strings.HasPrefix(specifier, "/") {
		return specifier, nil
	}

	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		return r.resolveRelative(specifier, referrer), nil
	}

	return r.resolveBare(specifier)
}

func (r *Resolver) resolveRelative(specifier, referrer string) string {
	if referrer == "" {
		return normalizePath(r.cfg.BaseDir + "/" + specifier)
	}
	if strings.HasPrefix(referrer, "http://") || strings.HasPrefix(referrer, "https://") {
		// String-based segment join: drop the last URL segment, append
		// the relative tail. Only slashes after the authority count as
		// segment separators, so a bare-host referrer keeps its host.
		base := referrer
		pathStart := strings.Index(referrer, "://") + len("://")
		if idx := strings.LastIndex(referrer, "/"); idx >= pathStart {
			base = referrer[:idx]
		}
		return base + "/" + strings.TrimPrefix(specifier, "./")
	}
	return normalizePath(path.Dir(referrer) + "/" + specifier)
}

// resolveBare performs node_modules-style directory search: starting at
// the base directory and walking upward, probe the fixed extension/index
// list, then the package.json "main" field, until a candidate exists or
// the filesystem root is reached. This is a search over candidate
// locations, not a retry of a failed operation.
func (r *Resolver) resolveBare(specifier string) (string, error) {
	dir := r.cfg.BaseDir
	for {
		candidate := path.Join(dir, "node_modules", specifier)

		for _, suffix := range bareProbeSuffixes {
			probe := candidate + suffix
			if r.exists(probe) {
				return probe, nil
			}
		}

		pkgPath := path.Join(candidate, "package.json")
		if r.exists(pkgPath) {
			if data, err := r.readFile(pkgPath); err == nil {
				if main := gjson.GetBytes(data, "main"); main.Type == gjson.String {
					mainPath := path.Join(candidate, main.String())
					if r.exists(mainPath) {
						return mainPath, nil
					}
				}
			}
		}

		parent := path.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", &modules.NotFoundError{Specifier: specifier}
}

func (r *Resolver) exists(p string) bool {
	_, err := r.stat(p)
	return err == nil
}

// normalizePath resolves "." and ".." path components as a component
// stack: ".." pops the most recent component and is a no-op when there is
// nothing left to pop, so a path with excess ".." segments does not
// error. A leading "/" on the input is preserved on the output.
func normalizePath(p string) string {
	absolute := strings.HasPrefix(p, "/")

	var stack []string
	for _, comp := range strings.Split(p, "/") {
		switch comp {
		case "", ".":
			// Skip empty segments and current-dir markers.
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, comp)
		}
	}

	joined := strings.Join(stack, "/")
	if absolute {
		return "/" + joined
	}
	return joined
}
