package models

import (
	"time"
)

// ParentName is the reserved name of the synthetic entry that navigates to the
// parent directory. Its path is the same sentinel, resolved by pathnav.
const ParentName = ".."

type Entry struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	IsDirectory  bool   `json:"is_directory"`
	IsSymlink    bool   `json:"is_symlink"`
	Size         *int64 `json:"size"`          // nil for directories
	LastModified *int64 `json:"last_modified"` // milliseconds since the epoch, nil when unknown
}

// ParentEntry returns the synthetic "go up" entry.
func ParentEntry() Entry {
	return Entry{
		Name:        ParentName,
		Path:        ParentName,
		IsDirectory: true,
	}
}

func (e Entry) IsParent() bool {
	return e.Name == ParentName && e.Path == ParentName
}

// ModTime returns the modification time, or the zero time when it's unknown.
func (e Entry) ModTime() time.Time {
	if e.LastModified == nil {
		return time.Time{}
	}
	return time.UnixMilli(*e.LastModified)
}

// Listing is the result of browsing one directory.
type Listing struct {
	Path    string  `json:"path"`
	IsRoot  bool    `json:"is_root"`
	Entries []Entry `json:"entries"`
}

// NewListing copies entries into a new listing. Entries is never nil so that it
// serializes as an empty array.
func NewListing(path string, isRoot bool, entries []Entry) *Listing {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return &Listing{
		Path:    path,
		IsRoot:  isRoot,
		Entries: out,
	}
}

// Files returns the entries excluding the synthetic parent entry.
func (l *Listing) Files() []Entry {
	out := make([]Entry, 0, len(l.Entries))
	for _, e := range l.Entries {
		if !e.IsParent() {
			out = append(out, e)
		}
	}
	return out
}
