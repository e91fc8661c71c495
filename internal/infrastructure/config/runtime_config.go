// Package config assembles runtime configuration from the CLI flags, the
// viper config overlay, and the persisted grant store.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/fennec-run/fennec/internal/domain/importmap"
	"github.com/fennec-run/fennec/internal/domain/permissions"
	"github.com/fennec-run/fennec/internal/infrastructure/loader"
)

// RuntimeConfig aggregates everything needed to construct a permission
// set and a loader. This is a value object that flows from the CLI into
// the runtime.
type RuntimeConfig struct {
	// Grants is the merged grant surface for the five categories.
	Grants permissions.GrantSet

	// AllowAll grants every category, equivalent to passing every
	// --allow flag.
	AllowAll bool

	// Unsafe disables permission checks entirely. Surfaced loudly in
	// logs; never the default.
	Unsafe bool

	// Prompt enables interactive permission prompting on denial.
	Prompt bool

	CacheEnabled  bool
	AllowRemote   bool
	ImportMapPath string
	BaseDir       string
	FetchTimeout  time.Duration
}

// ApplyDefaults fills zero values: caching on, remote on, working
// directory as base, default fetch timeout.
func (c *RuntimeConfig) ApplyDefaults() {
	if c.BaseDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			c.BaseDir = cwd
		} else {
			c.BaseDir = "/"
		}
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = loader.DefaultFetchTimeout
	}
}

// BuildPermissions constructs the permission set for this run. Unsafe
// wins over AllowAll, which wins over the grant set.
func (c *RuntimeConfig) BuildPermissions() *permissions.Permissions {
	switch {
	case c.Unsafe:
		return permissions.Unsafe()
	case c.AllowAll:
		return permissions.AllowAll()
	default:
		return permissions.FromGrants(c.Grants)
	}
}

// BuildLoaderConfig constructs the loader configuration, loading the
// import map file when one is configured.
func (c *RuntimeConfig) BuildLoaderConfig() (loader.Config, error) {
	cfg := loader.Config{
		CacheEnabled: c.CacheEnabled,
		AllowRemote:  c.AllowRemote,
		BaseDir:      c.BaseDir,
		FetchTimeout: c.FetchTimeout,
	}
	if c.ImportMapPath != "" {
		m, err := LoadImportMap(c.ImportMapPath)
		if err != nil {
			return loader.Config{}, err
		}
		cfg.ImportMap = m
	}
	return cfg, nil
}

// LoadImportMap reads and parses an import map file. Malformed JSON is a
// hard error; a missing file is too, since the path was configured
// explicitly.
func LoadImportMap(path string) (*importmap.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import map %q: %w", path, err)
	}
	m, err := importmap.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("import map %q: %w", path, err)
	}
	return m, nil
}
