// Package capabilities provides persistence and interactive prompting for
// permission grants.
package capabilities

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/fennec-run/fennec/internal/domain/permissions"
)

// FileStore persists the grant surface as YAML, by default at
// ~/.fennec/grants.yaml.
type FileStore struct {
	configPath string
}

// NewFileStore creates a store backed by the given path.
func NewFileStore(configPath string) *FileStore {
	return &FileStore{configPath: configPath}
}

// DefaultPath returns the standard grant file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".fennec", "grants.yaml"), nil
}

// ConfigPath returns the path to the grant file.
func (s *FileStore) ConfigPath() string {
	return s.configPath
}

// grantFile is the on-disk YAML shape.
type grantFile struct {
	Permissions permissions.GrantSet `yaml:"permissions"`
}

// Load reads stored grants. A missing file is not an error; it yields the
// zero grant set.
func (s *FileStore) Load() (permissions.GrantSet, error) {
	if _, err := os.Stat(s.configPath); os.IsNotExist(err) {
		return permissions.GrantSet{}, nil
	}

	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return permissions.GrantSet{}, fmt.Errorf("failed to read grant file: %w", err)
	}

	var file grantFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return permissions.GrantSet{}, fmt.Errorf("failed to parse grant file: %w", err)
	}
	return file.Permissions, nil
}

// Save replaces the stored grants. The file is written 0600: grant lists
// can reveal filesystem layout and hostnames.
func (s *FileStore) Save(grants permissions.GrantSet) error {
	data, err := yaml.Marshal(grantFile{Permissions: grants})
	if err != nil {
		return fmt.Errorf("failed to marshal grants: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.configPath), 0o700); err != nil {
		return fmt.Errorf("failed to create grant directory: %w", err)
	}
	if err := os.WriteFile(s.configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write grant file: %w", err)
	}
	return nil
}
