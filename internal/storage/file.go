package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// File stores the blob as a single JSON file on disk. This is the
// default backend and the desktop analog of browser local storage.
type File struct {
	path string
}

// NewFile returns a file-backed blob storage writing to path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads the whole file. A missing file means no record exists yet.
func (f *File) Load(ctx context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read state file: %w", err)
	}
	return data, true, nil
}

// Save replaces the whole file. The parent directory is created on first
// write so a configured nested path works out of the box.
func (f *File) Save(ctx context.Context, data []byte) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// Ping verifies the directory holding the state file is accessible.
func (f *File) Ping(ctx context.Context) error {
	dir := filepath.Dir(f.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("state dir unavailable: %w", err)
	}
	return nil
}

// Close is a no-op.
func (f *File) Close() {}
