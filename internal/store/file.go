package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSlot stores each key as <dir>/<key>.json.
type FileSlot struct {
	dir string
}

// NewFileSlot returns a FileSlot rooted at dir. The directory is created on
// first write.
func NewFileSlot(dir string) *FileSlot {
	return &FileSlot{dir: dir}
}

// Path returns the file backing key.
func (f *FileSlot) Path(key string) string {
	return filepath.Join(f.dir, sanitizeKey(key)+".json")
}

// Get reads the file for key.
func (f *FileSlot) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %s: %w", key, err)
	}
	return data, nil
}

// Put writes data to a temp file in the same directory and renames it over
// the target, so readers see either the old or the new blob.
func (f *FileSlot) Put(_ context.Context, key string, data []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("creating slot dir: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, "."+sanitizeKey(key)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing slot %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing slot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing slot %s: %w", key, err)
	}
	if err := os.Rename(tmpName, f.Path(key)); err != nil {
		return fmt.Errorf("replacing slot %s: %w", key, err)
	}
	return nil
}

// sanitizeKey keeps keys from escaping the slot directory.
func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, key)
}
