package browse

import (
	"context"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/fsbrowse/pkg/filesystem"
	"github.com/shishobooks/fsbrowse/pkg/models"
	"github.com/shishobooks/fsbrowse/pkg/pathnav"
)

// ErrOutsideRoot is returned when a directory outside the root boundary is
// requested while browsing is restricted to the root.
var ErrOutsideRoot = errors.New("directory is outside the root directory")

type Scanner interface {
	Scan(ctx context.Context, dir string) (*models.Listing, error)
}

type Options struct {
	RootDirectory    string
	DefaultDirectory string
	// EmptyOnScanFailure degrades a directory that can't be listed to an empty
	// listing instead of returning the error.
	EmptyOnScanFailure bool
	RestrictToRoot     bool
}

type Service struct {
	scanner Scanner
	opts    Options
}

func NewService(scanner Scanner, opts Options) *Service {
	return &Service{scanner: scanner, opts: opts}
}

func (s *Service) RootDirectory() string {
	return s.opts.RootDirectory
}

// Browse lists the requested directory, or the default directory when none is
// requested. Unless the directory is at or above the root, the listing starts
// with the synthetic parent entry. Entries are not sorted.
func (s *Service) Browse(ctx context.Context, requested string) (*models.Listing, error) {
	dir := requested
	if dir == "" {
		dir = s.opts.DefaultDirectory
	}

	if s.opts.RestrictToRoot && !pathnav.IsWithinRoot(dir, s.opts.RootDirectory) {
		return nil, errors.WithStack(ErrOutsideRoot)
	}

	listing, err := s.scanner.Scan(ctx, dir)
	if err != nil {
		var enumErr *filesystem.EnumerationError
		if !s.opts.EmptyOnScanFailure || !errors.As(err, &enumErr) {
			return nil, err
		}
		logger.FromContext(ctx).Warn("directory can't be listed; returning an empty listing", logger.Data{
			"directory": dir,
			"kind":      enumErr.Kind,
		})
		listing = models.NewListing(pathnav.Canonicalize(dir), false, nil)
	}

	isRoot := pathnav.IsAtOrAboveRoot(listing.Path, s.opts.RootDirectory)

	entries := listing.Entries
	if !isRoot {
		entries = append([]models.Entry{models.ParentEntry()}, entries...)
	}

	return models.NewListing(listing.Path, isRoot, entries), nil
}

// Up browses the directory that navigating up from dir leads to. The target
// never escapes the root.
func (s *Service) Up(ctx context.Context, dir string) (*models.Listing, error) {
	if dir == "" {
		dir = s.opts.DefaultDirectory
	}
	return s.Browse(ctx, s.UpTarget(dir))
}

// UpTarget resolves the parent entry sentinel for a listing of dir.
func (s *Service) UpTarget(dir string) string {
	return pathnav.UpTarget(dir, s.opts.RootDirectory)
}
