package capabilities

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fennec-run/fennec/internal/domain/permissions"
)

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "grants.yaml"))

	grants, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, permissions.GrantSet{}, grants)
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "grants.yaml")
	store := NewFileStore(path)

	grants := permissions.GrantSet{
		Read: permissions.Grant{List: []string{"/proj", "/data"}},
		Net:  permissions.Grant{All: true},
		Env:  permissions.Grant{List: []string{"HOME"}},
	}
	require.NoError(t, store.Save(grants))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, grants, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_LoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grants.yaml")
	require.NoError(t, os.WriteFile(path, []byte("permissions: [not: a: mapping"), 0o600))

	store := NewFileStore(path)
	_, err := store.Load()
	assert.Error(t, err)
}

func TestFileStore_LoadHandWrittenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grants.yaml")
	content := `permissions:
  read:
    allow:
      - /home/user/projects
  net:
    all: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	store := NewFileStore(path)
	grants, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"/home/user/projects"}, grants.Read.List)
	assert.True(t, grants.Net.All)
	assert.False(t, grants.Run.All)
}
