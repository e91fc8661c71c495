// Package ops is the native-operation layer the script engine binds its
// host calls to. Every operation takes the capability handle as an
// explicit parameter; there is no ambient or thread-local runtime state.
package ops

import (
	"fmt"
	"os"
	"time"

	"github.com/fennec-run/fennec/internal/domain/permissions"
)

// ReadTextFile reads a file as UTF-8 text, gated by the read capability.
func ReadTextFile(path string, perms *permissions.Permissions) (string, error) {
	if err := perms.CheckRead(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}
	return string(data), nil
}

// WriteTextFile writes text to a file, gated by the write capability.
func WriteTextFile(path, data string, perms *permissions.Permissions) error {
	if err := perms.CheckWrite(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}

// AppendTextFile appends text to a file, creating it if needed, gated by
// the write capability.
func AppendTextFile(path, data string, perms *permissions.Permissions) error {
	if err := perms.CheckWrite(path); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %q for append: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(data); err != nil {
		return fmt.Errorf("failed to append to %q: %w", path, err)
	}
	return nil
}

// Exists reports whether a path exists, gated by the read capability.
func Exists(path string, perms *permissions.Permissions) (bool, error) {
	if err := perms.CheckRead(path); err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	return true, nil
}

// FileMetadata describes a file for script-visible stat calls.
type FileMetadata struct {
	Name     string
	Size     int64
	IsDir    bool
	Mode     os.FileMode
	Modified time.Time
}

// Metadata returns file metadata, gated by the read capability.
func Metadata(path string, perms *permissions.Permissions) (FileMetadata, error) {
	if err := perms.CheckRead(path); err != nil {
		return FileMetadata{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return FileMetadata{}, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	return FileMetadata{
		Name:     info.Name(),
		Size:     info.Size(),
		IsDir:    info.IsDir(),
		Mode:     info.Mode(),
		Modified: info.ModTime(),
	}, nil
}

// DirEntry describes one directory entry for script-visible listings.
type DirEntry struct {
	Name  string
	IsDir bool
}

// ReadDir lists a directory, gated by the read capability.
func ReadDir(path string, perms *permissions.Permissions) ([]DirEntry, error) {
	if err := perms.CheckRead(path); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", path, err)
	}
	out := make([]DirEntry, len(entries))
	for i, e := range entries {
		out[i] = DirEntry{Name: e.Name(), IsDir: e.IsDir()}
	}
	return out, nil
}

// Remove deletes a file or empty directory, gated by the write
// capability.
func Remove(path string, perms *permissions.Permissions) error {
	if err := perms.CheckWrite(path); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %q: %w", path, err)
	}
	return nil
}

// Rename moves a file. Both the source and the destination must pass the
// write capability.
func Rename(oldPath, newPath string, perms *permissions.Permissions) error {
	if err := perms.CheckWrite(oldPath); err != nil {
		return err
	}
	if err := perms.CheckWrite(newPath); err != nil {
		return err
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("failed to rename %q: %w", oldPath, err)
	}
	return nil
}
