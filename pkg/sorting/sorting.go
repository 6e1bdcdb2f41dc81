// Package sorting orders listing entries by a user-selected key and direction.
//
// Every key defines a total order: absent sizes (directories) and absent
// modification times sort below any present value, and directories sort above
// files under is_directory. Descending is the exact inverse of ascending.
package sorting

import (
	"cmp"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/shishobooks/fsbrowse/pkg/models"
)

type Key string

const (
	KeyName         Key = "name"
	KeySize         Key = "size"
	KeyLastModified Key = "last_modified"
	KeyIsDirectory  Key = "is_directory"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

var (
	ErrUnknownKey       = errors.New("unknown sort key")
	ErrUnknownDirection = errors.New("unknown sort direction")
)

// Keys lists the supported keys in display order.
var Keys = []Key{KeyName, KeySize, KeyLastModified, KeyIsDirectory}

func ParseKey(s string) (Key, error) {
	k := Key(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Keys, k) {
		return "", errors.Wrapf(ErrUnknownKey, "%q", s)
	}
	return k, nil
}

func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if d != Ascending && d != Descending {
		return "", errors.Wrapf(ErrUnknownDirection, "%q", s)
	}
	return d, nil
}

// Compare orders a and b by key. An unknown key compares everything as equal,
// which leaves a stable sort untouched.
func Compare(a, b models.Entry, key Key, dir Direction) Ordering {
	o := compareAscending(a, b, key)
	if dir == Descending {
		return -o
	}
	return o
}

func compareAscending(a, b models.Entry, key Key) Ordering {
	switch key {
	case KeyName:
		return Ordering(strings.Compare(a.Name, b.Name))
	case KeySize:
		return compareOptional(a.Size, b.Size)
	case KeyLastModified:
		return compareOptional(a.LastModified, b.LastModified)
	case KeyIsDirectory:
		return compareBool(a.IsDirectory, b.IsDirectory)
	default:
		return Equal
	}
}

// compareOptional puts absent values before every present value.
func compareOptional(a, b *int64) Ordering {
	switch {
	case a == nil && b == nil:
		return Equal
	case a == nil:
		return Less
	case b == nil:
		return Greater
	default:
		return Ordering(cmp.Compare(*a, *b))
	}
}

// compareBool orders false before true.
func compareBool(a, b bool) Ordering {
	switch {
	case a == b:
		return Equal
	case !a:
		return Less
	default:
		return Greater
	}
}

// Sort returns a stably sorted copy of entries. The synthetic parent entry is
// kept first regardless of key and direction.
func Sort(entries []models.Entry, key Key, dir Direction) []models.Entry {
	out := make([]models.Entry, 0, len(entries))
	rest := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsParent() {
			out = append(out, e)
			continue
		}
		rest = append(rest, e)
	}

	slices.SortStableFunc(rest, func(a, b models.Entry) int {
		return int(Compare(a, b, key, dir))
	})

	return append(out, rest...)
}
