package ops

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fennec-run/fennec/internal/domain/permissions"
)

func TestReadWriteTextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	perms := permissions.AllowAll()

	require.NoError(t, WriteTextFile(path, "hello", perms))

	content, err := ReadTextFile(path, perms)
	require.NoError(t, err)
	assert.Equal(t, "hello", content)
}

func TestAppendTextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt")
	perms := permissions.AllowAll()

	require.NoError(t, AppendTextFile(path, "one\n", perms))
	require.NoError(t, AppendTextFile(path, "two\n", perms))

	content, err := ReadTextFile(path, perms)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", content)
}

func TestExistsAndMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	perms := permissions.AllowAll()
	require.NoError(t, os.WriteFile(path, []byte("abcd"), 0o644))

	exists, err := Exists(path, perms)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = Exists(filepath.Join(dir, "missing"), perms)
	require.NoError(t, err)
	assert.False(t, exists)

	meta, err := Metadata(path, perms)
	require.NoError(t, err)
	assert.Equal(t, "data.bin", meta.Name)
	assert.Equal(t, int64(4), meta.Size)
	assert.False(t, meta.IsDir)
}

func TestReadDir(t *testing.T) {
	dir := t.TempDir()
	perms := permissions.AllowAll()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	entries, err := ReadDir(dir, perms)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Name)
	assert.False(t, entries[0].IsDir)
	assert.Equal(t, "sub", entries[1].Name)
	assert.True(t, entries[1].IsDir)
}

func TestRemoveAndRename(t *testing.T) {
	dir := t.TempDir()
	perms := permissions.AllowAll()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	require.NoError(t, Rename(src, dst, perms))
	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, Remove(dst, perms))
	_, err = os.Stat(dst)
	assert.True(t, os.IsNotExist(err))
}

func TestOps_PermissionGates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	denyAll := permissions.New()

	assertDenied := func(t *testing.T, err error, category permissions.Category) {
		t.Helper()
		var denied *permissions.DeniedError
		require.True(t, errors.As(err, &denied))
		assert.Equal(t, category, denied.Category)
	}

	_, err := ReadTextFile(path, denyAll)
	assertDenied(t, err, permissions.CategoryRead)

	err = WriteTextFile(path, "y", denyAll)
	assertDenied(t, err, permissions.CategoryWrite)

	err = AppendTextFile(path, "y", denyAll)
	assertDenied(t, err, permissions.CategoryWrite)

	_, err = Exists(path, denyAll)
	assertDenied(t, err, permissions.CategoryRead)

	_, err = ReadDir(dir, denyAll)
	assertDenied(t, err, permissions.CategoryRead)

	err = Remove(path, denyAll)
	assertDenied(t, err, permissions.CategoryWrite)

	_, _, err = GetEnv("HOME", denyAll)
	assertDenied(t, err, permissions.CategoryEnv)

	err = CheckRun("git", denyAll)
	assertDenied(t, err, permissions.CategoryRun)

	err = CheckURL("https://example.com/x", denyAll)
	assertDenied(t, err, permissions.CategoryNet)
}

func TestGetEnv(t *testing.T) {
	perms := permissions.FromGrants(permissions.GrantSet{
		Env: permissions.Grant{List: []string{"FENNEC_TEST_VAR"}},
	})
	t.Setenv("FENNEC_TEST_VAR", "42")

	value, ok, err := GetEnv("FENNEC_TEST_VAR", perms)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "42", value)

	_, _, err = GetEnv("PATH", perms)
	assert.Error(t, err)
}

func TestCheckURL(t *testing.T) {
	perms := permissions.FromGrants(permissions.GrantSet{
		Net: permissions.Grant{List: []string{"api.example.com"}},
	})

	assert.NoError(t, CheckURL("https://api.example.com/v1", perms))
	assert.Error(t, CheckURL("https://other.com/v1", perms))
	assert.Error(t, CheckURL("not a url", perms))
}
