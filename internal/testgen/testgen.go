// Package testgen provides utilities for generating directory trees and fake
// filesystems with configurable metadata for testing the scanner and browse
// service.
package testgen

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// FileOptions configures a generated file.
type FileOptions struct {
	Name    string
	Size    int       // number of bytes written
	ModTime time.Time // zero leaves the creation time
}

// TempDir creates a temporary directory for testing and registers cleanup.
// Symlinks in the returned path are resolved (macOS /var -> /private/var) so it
// can be compared with canonical paths.
func TempDir(t *testing.T, pattern string) string {
	t.Helper()
	dir, err := os.MkdirTemp("", pattern)
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("failed to resolve temp dir %s: %v", dir, err)
	}
	return resolved
}

// TempRootDir creates a temporary directory meant to be used as the root
// boundary of a browse service.
func TempRootDir(t *testing.T) string {
	t.Helper()
	return TempDir(t, "testgen-root-*")
}

// CreateSubDir creates a subdirectory within the given parent directory.
// Returns the full path to the created subdirectory.
func CreateSubDir(t *testing.T, parent, name string) string {
	t.Helper()
	dir := filepath.Join(parent, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create subdirectory %s: %v", dir, err)
	}
	return dir
}

// WriteFile creates a file in dir according to opts.
// Returns the full path to the created file.
func WriteFile(t *testing.T, dir string, opts FileOptions) string {
	t.Helper()
	path := filepath.Join(dir, opts.Name)
	if err := os.WriteFile(path, make([]byte, opts.Size), 0600); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	if !opts.ModTime.IsZero() {
		if err := os.Chtimes(path, opts.ModTime, opts.ModTime); err != nil {
			t.Fatalf("failed to set times on %s: %v", path, err)
		}
	}
	return path
}

// Symlink creates a symbolic link named name in dir pointing at target. The
// target doesn't need to exist.
func Symlink(t *testing.T, dir, name, target string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.Symlink(target, path); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	return path
}

// DataDir builds the tree used throughout the tests:
//
//	b.txt  10 bytes, modified at t1
//	a.txt  20 bytes, modified at t2 > t1
//	c/     directory
func DataDir(t *testing.T, parent string) string {
	t.Helper()
	dir := CreateSubDir(t, parent, "data")
	t1 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	WriteFile(t, dir, FileOptions{Name: "b.txt", Size: 10, ModTime: t1})
	WriteFile(t, dir, FileOptions{Name: "a.txt", Size: 20, ModTime: t1.Add(time.Hour)})
	CreateSubDir(t, dir, "c")
	return dir
}

// Int64Ptr is a helper to create a pointer to an int64.
func Int64Ptr(i int64) *int64 {
	return &i
}
