// Package loader orchestrates module loading: resolution, cache lookup,
// permission-gated source acquisition, dependency extraction, and cache
// population. One Loader instance serves one runtime; its cache and
// loading set are shared across all load calls on it.
package loader

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/fennec-run/fennec/internal/application/ports"
	"github.com/fennec-run/fennec/internal/domain/extractor"
	"github.com/fennec-run/fennec/internal/domain/importmap"
	"github.com/fennec-run/fennec/internal/domain/modules"
	"github.com/fennec-run/fennec/internal/domain/permissions"
	"github.com/fennec-run/fennec/internal/infrastructure/resolver"
)

// DefaultFetchTimeout bounds a single remote fetch when the config does
// not set one. Remote acquisition is the only operation that may block.
const DefaultFetchTimeout = 30 * time.Second

// Config controls loader behavior.
type Config struct {
	// CacheEnabled toggles the module cache.
	CacheEnabled bool

	// AllowRemote enables http/https module sources.
	AllowRemote bool

	// ImportMap is consulted by the resolver before other strategies.
	ImportMap *importmap.Map

	// BaseDir anchors relative and bare resolution. Defaults to the
	// working directory.
	BaseDir string

	// FetchTimeout bounds each remote fetch. Zero means
	// DefaultFetchTimeout.
	FetchTimeout time.Duration
}

// DefaultConfig returns the default loader configuration: caching on,
// remote modules allowed, no import map, working directory as base.
func DefaultConfig() Config {
	return Config{
		CacheEnabled: true,
		AllowRemote:  true,
		FetchTimeout: DefaultFetchTimeout,
	}
}

// Option configures a Loader.
type Option func(*Loader)

// WithFetcher sets the remote fetch collaborator. Without one, loading a
// URL fails with a network error after the permission gates pass.
func WithFetcher(f ports.RemoteFetcher) Option {
	return func(l *Loader) {
		l.fetcher = f
	}
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// Loader loads modules on behalf of the script engine.
type Loader struct {
	id       string
	perms    *permissions.Permissions
	cfg      Config
	resolver *resolver.Resolver
	cache    *Cache
	loading  *LoadingSet
	fetcher  ports.RemoteFetcher
	log      *slog.Logger
}

// New creates a loader with the given permissions and configuration.
// Permissions are treated as read-only for the lifetime of the loader.
func New(perms *permissions.Permissions, cfg Config, opts ...Option) *Loader {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	l := &Loader{
		id:    uuid.NewString(),
		perms: perms,
		cfg:   cfg,
		resolver: resolver.New(resolver.Config{
			BaseDir:     cfg.BaseDir,
			AllowRemote: cfg.AllowRemote,
			ImportMap:   cfg.ImportMap,
		}),
		cache:   NewCache(),
		loading: NewLoadingSet(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if perms.IsUnsafe() {
		l.log.Warn("permission checks are disabled; running in unsafe mode", "session", l.id)
	}
	return l
}

// ID returns the loader's session identifier, used in log fields.
func (l *Loader) ID() string {
	return l.id
}

// Cache returns the module cache.
func (l *Loader) Cache() *Cache {
	return l.cache
}

// Resolve turns specifier into a canonical specifier. referrer may be
// empty.
func (l *Loader) Resolve(specifier, referrer string) (string, error) {
	return l.resolver.Resolve(specifier, referrer)
}

// Load acquires the source for an already-canonical specifier. Local
// paths are permission-gated by the read capability; URLs are gated twice,
// once by loader configuration and once by the network capability for the
// specific host.
func (l *Loader) Load(ctx context.Context, specifier string) (modules.Source, error) {
	if l.cfg.CacheEnabled {
		if cached, ok := l.cache.Get(specifier); ok {
			return cached.Source, nil
		}
	}

	if strings.HasPrefix(specifier, "http://") || strings.HasPrefix(specifier, "https://") {
		return l.loadRemote(ctx, specifier)
	}
	return l.loadLocal(specifier)
}

func (l *Loader) loadLocal(path string) (modules.Source, error) {
	if err := l.perms.CheckRead(path); err != nil {
		return modules.Source{}, &modules.PermissionDeniedError{Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return modules.Source{}, &modules.ResolutionError{Specifier: path, Err: err}
	}
	if !utf8.Valid(data) {
		return modules.Source{}, &modules.ResolutionError{
			Specifier: path,
			Err:       errInvalidUTF8,
		}
	}

	return modules.Source{
		Specifier: path,
		Code:      string(data),
		Type:      modules.TypeFromSpecifier(path),
	}, nil
}

func (l *Loader) loadRemote(ctx context.Context, rawURL string) (modules.Source, error) {
	if !l.cfg.AllowRemote {
		return modules.Source{}, &modules.PermissionDeniedError{Reason: "remote modules are disabled"}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return modules.Source{}, &modules.InvalidSpecifierError{Specifier: rawURL}
	}
	if err := l.perms.CheckNet(parsed.Hostname()); err != nil {
		return modules.Source{}, &modules.PermissionDeniedError{Err: err}
	}

	if l.fetcher == nil {
		return modules.Source{}, &modules.NetworkError{URL: rawURL, Err: errNoFetcher}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, l.cfg.FetchTimeout)
	defer cancel()

	code, err := l.fetcher.Fetch(fetchCtx, rawURL)
	if err != nil {
		return modules.Source{}, &modules.NetworkError{URL: rawURL, Err: err}
	}

	return modules.Source{
		Specifier: rawURL,
		Code:      code,
		Type:      modules.TypeFromSpecifier(parsed.Path),
	}, nil
}

// LoadModule runs the full pipeline: cycle check, resolution, cache
// lookup, source acquisition, dependency extraction, and cache
// population. The loading-set entry is released on every exit path,
// including failure and caller cancellation.
func (l *Loader) LoadModule(ctx context.Context, specifier, referrer string) (modules.ResolvedModule, error) {
	// A raw specifier that is already in flight is a cycle regardless of
	// what it would resolve to; no resolution is attempted.
	if l.loading.Contains(specifier) {
		return modules.ResolvedModule{}, &modules.CircularDependencyError{Specifier: specifier}
	}

	resolved, err := l.Resolve(specifier, referrer)
	if err != nil {
		return modules.ResolvedModule{}, err
	}

	// Completed modules cannot cycle, so a cache hit needs no loading-set
	// bookkeeping.
	if l.cfg.CacheEnabled {
		if cached, ok := l.cache.Get(resolved); ok {
			return cached, nil
		}
	}

	if !l.loading.TryInsert(resolved) {
		return modules.ResolvedModule{}, &modules.CircularDependencyError{Specifier: resolved}
	}
	defer l.loading.Remove(resolved)

	l.log.Debug("loading module",
		"session", l.id,
		"specifier", specifier,
		"resolved", resolved,
		"referrer", referrer,
	)

	source, err := l.Load(ctx, resolved)
	if err != nil {
		return modules.ResolvedModule{}, err
	}

	module := modules.ResolvedModule{
		Specifier:    resolved,
		Source:       source,
		Dependencies: extractor.Extract(source.Code),
	}

	// Only full successes are cached; a failed load never poisons the
	// cache, so a retry by the engine is a normal miss.
	if l.cfg.CacheEnabled {
		l.cache.Insert(resolved, module)
	}

	return module, nil
}
