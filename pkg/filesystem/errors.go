package filesystem

import (
	"io/fs"
	"syscall"

	"github.com/pkg/errors"
)

// ErrNotDirectory is returned when listing a path that isn't a directory.
var ErrNotDirectory = errors.New("not a directory")

type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindPermissionDenied Kind = "permission_denied"
	KindNotADirectory    Kind = "not_a_directory"
	KindUnknown          Kind = "unknown"
)

// EnumerationError is a failure to list a directory as a whole.
type EnumerationError struct {
	Path string
	Kind Kind
	Err  error
}

func (e *EnumerationError) Error() string {
	return "list " + e.Path + ": " + string(e.Kind) + ": " + e.Err.Error()
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}

// Classify wraps err in an EnumerationError for path.
func Classify(path string, err error) *EnumerationError {
	return &EnumerationError{
		Path: path,
		Kind: kindOf(err),
		Err:  err,
	}
}

func kindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrNotDirectory), errors.Is(err, syscall.ENOTDIR):
		return KindNotADirectory
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	default:
		return KindUnknown
	}
}
