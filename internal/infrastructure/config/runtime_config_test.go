package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fennec-run/fennec/internal/domain/permissions"
	"github.com/fennec-run/fennec/internal/infrastructure/loader"
)

func TestRuntimeConfig_ApplyDefaults(t *testing.T) {
	var c RuntimeConfig
	c.ApplyDefaults()

	assert.NotEmpty(t, c.BaseDir)
	assert.Equal(t, loader.DefaultFetchTimeout, c.FetchTimeout)

	// Explicit values survive.
	c2 := RuntimeConfig{BaseDir: "/proj", FetchTimeout: 5 * time.Second}
	c2.ApplyDefaults()
	assert.Equal(t, "/proj", c2.BaseDir)
	assert.Equal(t, 5*time.Second, c2.FetchTimeout)
}

func TestRuntimeConfig_BuildPermissions(t *testing.T) {
	tests := []struct {
		name   string
		config RuntimeConfig
		verify func(t *testing.T, p *permissions.Permissions)
	}{
		{
			name:   "default denies everything",
			config: RuntimeConfig{},
			verify: func(t *testing.T, p *permissions.Permissions) {
				assert.Error(t, p.CheckRead("/any"))
				assert.False(t, p.IsUnsafe())
			},
		},
		{
			name:   "allow all",
			config: RuntimeConfig{AllowAll: true},
			verify: func(t *testing.T, p *permissions.Permissions) {
				assert.NoError(t, p.CheckRun("anything"))
				assert.False(t, p.IsUnsafe())
			},
		},
		{
			name:   "unsafe wins over grants",
			config: RuntimeConfig{Unsafe: true},
			verify: func(t *testing.T, p *permissions.Permissions) {
				assert.NoError(t, p.CheckWrite("/etc/passwd"))
				assert.True(t, p.IsUnsafe())
			},
		},
		{
			name: "grant set",
			config: RuntimeConfig{Grants: permissions.GrantSet{
				Read: permissions.Grant{List: []string{"/proj"}},
			}},
			verify: func(t *testing.T, p *permissions.Permissions) {
				assert.NoError(t, p.CheckRead("/proj/a.js"))
				assert.Error(t, p.CheckRead("/etc/passwd"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.verify(t, tt.config.BuildPermissions())
		})
	}
}

func TestRuntimeConfig_BuildLoaderConfig(t *testing.T) {
	dir := t.TempDir()
	mapPath := filepath.Join(dir, "import_map.json")
	require.NoError(t, os.WriteFile(mapPath, []byte(`{"imports": {"react": "/vendor/react.js"}}`), 0o644))

	c := RuntimeConfig{
		CacheEnabled:  true,
		AllowRemote:   false,
		BaseDir:       dir,
		ImportMapPath: mapPath,
		FetchTimeout:  10 * time.Second,
	}

	cfg, err := c.BuildLoaderConfig()
	require.NoError(t, err)
	assert.True(t, cfg.CacheEnabled)
	assert.False(t, cfg.AllowRemote)
	assert.Equal(t, dir, cfg.BaseDir)
	require.NotNil(t, cfg.ImportMap)

	resolved, ok := cfg.ImportMap.Resolve("react")
	require.True(t, ok)
	assert.Equal(t, "/vendor/react.js", resolved)
}

func TestLoadImportMap_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadImportMap(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"imports": {`), 0o644))

		_, err := LoadImportMap(path)
		assert.Error(t, err)
	})
}
