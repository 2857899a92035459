package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var ErrNotText = errors.New("file is not valid UTF-8 text")

// Manager owns one session's upload folder on the local disk. The folder path
// itself never changes; Reset empties it but recreates it in place.
type Manager struct {
	baseDir string
}

func NewManager(baseDir string) *Manager {
	return &Manager{baseDir: baseDir}
}

// Prepare creates the named upload folder under the base directory and
// returns its full path. Idempotent.
func (m *Manager) Prepare(folderName string) (string, error) {
	dir := filepath.Join(m.baseDir, folderName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}
	return dir, nil
}

// Save writes data into dir under the file's original name, silently
// overwriting on collision. Files with a .txt suffix must decode as UTF-8;
// everything else is copied byte for byte.
func (m *Manager) Save(dir, name string, data []byte) (string, error) {
	if strings.HasSuffix(name, ".txt") && !utf8.Valid(data) {
		return "", fmt.Errorf("save %s: %w", name, ErrNotText)
	}

	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	return path, nil
}

// List returns the entry names inside dir, or an empty slice when the
// directory does not exist.
func (m *Manager) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// Reset removes dir and everything under it, then recreates it empty.
// No-op when the directory never existed.
func (m *Manager) Reset(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("reset %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("reset %s: %w", dir, err)
	}
	return nil
}
