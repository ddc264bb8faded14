// Package storage provides an abstraction over file operations using afero.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileSystem wraps an afero filesystem rooted at the data directory.
type FileSystem struct {
	fs      afero.Fs
	baseDir string
}

// NewFileSystem creates a FileSystem on the real OS filesystem.
// If baseDir is empty, it uses NOTEWELL_DATA_DIR or defaults to "data".
func NewFileSystem(baseDir string) *FileSystem {
	if baseDir == "" {
		baseDir = os.Getenv("NOTEWELL_DATA_DIR")
		if baseDir == "" {
			baseDir = "data"
		}
	}

	fs := afero.NewOsFs()
	if err := fs.MkdirAll(baseDir, 0755); err != nil {
		// If we can't create the directory, fall back to memory fs for safety
		fs = afero.NewMemMapFs()
	}

	return &FileSystem{fs: fs, baseDir: baseDir}
}

// NewMemoryFileSystem creates a FileSystem backed by memory (useful for testing)
func NewMemoryFileSystem() *FileSystem {
	return &FileSystem{fs: afero.NewMemMapFs(), baseDir: "data"}
}

// GetDataDir returns the base data directory path
func (f *FileSystem) GetDataDir() string {
	return f.baseDir
}

// DataPath joins name onto the data directory.
func (f *FileSystem) DataPath(name string) string {
	return filepath.Join(f.baseDir, name)
}

// WriteFile writes data to a file, creating parent directories as needed.
func (f *FileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := f.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return afero.WriteFile(f.fs, path, data, perm)
}

// WriteFileAtomic writes data to a temp file next to path and renames it
// into place, so readers never see a partially written file.
func (f *FileSystem) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := f.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, data, perm); err != nil {
		return err
	}
	if err := f.fs.Rename(tmp, path); err != nil {
		f.fs.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// ReadFile reads data from a file
func (f *FileSystem) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(f.fs, path)
}

// ReadDir lists a directory's entries.
func (f *FileSystem) ReadDir(path string) ([]os.FileInfo, error) {
	return afero.ReadDir(f.fs, path)
}

// Remove removes a file
func (f *FileSystem) Remove(path string) error {
	return f.fs.Remove(path)
}

// Rename renames (moves) a file
func (f *FileSystem) Rename(oldpath, newpath string) error {
	return f.fs.Rename(oldpath, newpath)
}

// Exists checks if a file or directory exists
func (f *FileSystem) Exists(path string) (bool, error) {
	return afero.Exists(f.fs, path)
}

// MkdirAll creates a directory and all parent directories
func (f *FileSystem) MkdirAll(path string, perm os.FileMode) error {
	return f.fs.MkdirAll(path, perm)
}
