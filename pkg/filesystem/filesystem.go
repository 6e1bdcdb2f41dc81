// Package filesystem is the filesystem capability the scanner reads through.
// It only lists and stats, it never opens file contents.
package filesystem

import (
	"io/fs"
	"os"
	"time"

	"github.com/pkg/errors"
)

// EntryInfo is the metadata of one directory child, as reported by lstat.
type EntryInfo struct {
	IsDir     bool
	IsSymlink bool
	Size      int64
	ModTime   time.Time
}

type FS interface {
	// ListChildren returns the names of the immediate children of dir in the
	// order the filesystem enumerates them.
	ListChildren(dir string) ([]string, error)
	// StatEntry returns metadata for path without following symbolic links.
	StatEntry(path string) (EntryInfo, error)
}

type osFS struct{}

// NewOS returns an FS backed by the operating system.
func NewOS() FS {
	return osFS{}
}

func (osFS) ListChildren(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !info.IsDir() {
		return nil, errors.WithStack(&fs.PathError{Op: "readdir", Path: dir, Err: ErrNotDirectory})
	}

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return names, nil
}

func (osFS) StatEntry(path string) (EntryInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return EntryInfo{}, errors.WithStack(err)
	}
	return EntryInfo{
		IsDir:     info.IsDir(),
		IsSymlink: info.Mode()&fs.ModeSymlink != 0,
		Size:      info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}
