package testgen

import (
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/shishobooks/fsbrowse/pkg/filesystem"
)

// FS is an in-memory filesystem.FS. Paths are cleaned before lookup. Failures
// can be injected per path for both listing and stat.
type FS struct {
	mu        sync.Mutex
	dirs      map[string][]string
	infos     map[string]filesystem.EntryInfo
	listErrs  map[string]error
	statErrs  map[string]error
	statCalls int
}

func NewFS() *FS {
	return &FS{
		dirs:     map[string][]string{},
		infos:    map[string]filesystem.EntryInfo{},
		listErrs: map[string]error{},
		statErrs: map[string]error{},
	}
}

// AddDir registers an empty directory.
func (f *FS) AddDir(path string) *FS {
	f.mu.Lock()
	defer f.mu.Unlock()
	path = filepath.Clean(path)
	if _, ok := f.dirs[path]; !ok {
		f.dirs[path] = []string{}
	}
	f.infos[path] = filesystem.EntryInfo{IsDir: true}
	f.addChildLocked(path)
	return f
}

// AddEntry registers a child of its parent directory with the given info. The
// parent must have been added first.
func (f *FS) AddEntry(path string, info filesystem.EntryInfo) *FS {
	f.mu.Lock()
	defer f.mu.Unlock()
	path = filepath.Clean(path)
	f.infos[path] = info
	if info.IsDir {
		if _, ok := f.dirs[path]; !ok {
			f.dirs[path] = []string{}
		}
	}
	f.addChildLocked(path)
	return f
}

// FailList makes ListChildren(path) return err.
func (f *FS) FailList(path string, err error) *FS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErrs[filepath.Clean(path)] = err
	return f
}

// FailStat makes StatEntry(path) return err while the entry is still listed.
func (f *FS) FailStat(path string, err error) *FS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statErrs[filepath.Clean(path)] = err
	return f
}

// StatCalls returns how many times StatEntry was called.
func (f *FS) StatCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statCalls
}

func (f *FS) addChildLocked(path string) {
	parent := filepath.Dir(path)
	if parent == path {
		return
	}
	children, ok := f.dirs[parent]
	if !ok {
		return
	}
	name := filepath.Base(path)
	for _, c := range children {
		if c == name {
			return
		}
	}
	f.dirs[parent] = append(children, name)
}

func (f *FS) ListChildren(dir string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dir = filepath.Clean(dir)
	if err, ok := f.listErrs[dir]; ok {
		return nil, err
	}
	children, ok := f.dirs[dir]
	if !ok {
		if _, isFile := f.infos[dir]; isFile {
			return nil, &fs.PathError{Op: "readdir", Path: dir, Err: filesystem.ErrNotDirectory}
		}
		return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrNotExist}
	}
	out := make([]string, len(children))
	copy(out, children)
	return out, nil
}

func (f *FS) StatEntry(path string) (filesystem.EntryInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statCalls++
	path = filepath.Clean(path)
	if err, ok := f.statErrs[path]; ok {
		return filesystem.EntryInfo{}, err
	}
	info, ok := f.infos[path]
	if !ok {
		return filesystem.EntryInfo{}, &fs.PathError{Op: "lstat", Path: path, Err: fs.ErrNotExist}
	}
	return info, nil
}

// Names returns the sorted child names of dir, for assertions that don't care
// about enumeration order.
func (f *FS) Names(dir string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string{}, f.dirs[filepath.Clean(dir)]...)
	sort.Strings(out)
	return out
}
