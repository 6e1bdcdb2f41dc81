package scanner

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/fsbrowse/pkg/filesystem"
	"github.com/shishobooks/fsbrowse/pkg/models"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of simultaneous metadata lookups used when
// none is configured.
const DefaultConcurrency = 16

type Scanner struct {
	fs          filesystem.FS
	concurrency int
}

func New(fsys filesystem.FS, concurrency int) *Scanner {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Scanner{fs: fsys, concurrency: concurrency}
}

// Outcome is the result of resolving one directory child. An absent outcome
// carries the reason the entry was dropped.
type Outcome struct {
	Entry models.Entry
	Err   error
}

func (o Outcome) Present() bool {
	return o.Err == nil
}

// Scan lists the immediate children of dir with their metadata. Children whose
// metadata can't be read are dropped. A directory that can't be listed returns
// a *filesystem.EnumerationError.
func (s *Scanner) Scan(ctx context.Context, dir string) (*models.Listing, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.WithStack(filesystem.Classify(dir, err))
	}

	log := logger.FromContext(ctx).Data(logger.Data{"scan_id": uuid.NewString(), "directory": absDir})

	names, err := s.fs.ListChildren(absDir)
	if err != nil {
		return nil, errors.WithStack(filesystem.Classify(absDir, err))
	}

	outcomes, err := s.resolveAll(ctx, absDir, names)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	entries := make([]models.Entry, 0, len(outcomes))
	dropped := 0
	for i, o := range outcomes {
		if !o.Present() {
			dropped++
			log.Debug("dropping entry", logger.Data{"name": names[i], "err": o.Err.Error()})
			continue
		}
		entries = append(entries, o.Entry)
	}

	log.Info("scanned directory", logger.Data{"count": len(entries), "dropped": dropped})

	return models.NewListing(absDir, false, entries), nil
}

// resolveAll stats every child concurrently. Outcomes are indexed like names so
// the result keeps enumeration order.
func (s *Scanner) resolveAll(ctx context.Context, dir string, names []string) ([]Outcome, error) {
	outcomes := make([]Outcome, len(names))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, name := range names {
		g.Go(func() error {
			outcomes[i] = s.resolve(ctx, dir, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

func (s *Scanner) resolve(ctx context.Context, dir, name string) Outcome {
	if err := ctx.Err(); err != nil {
		return Outcome{Err: err}
	}

	path := filepath.Join(dir, name)
	info, err := s.fs.StatEntry(path)
	if err != nil {
		return Outcome{Err: err}
	}

	mtime := info.ModTime.UnixMilli()
	entry := models.Entry{
		Name:         name,
		Path:         path,
		IsDirectory:  info.IsDir,
		IsSymlink:    info.IsSymlink,
		LastModified: &mtime,
	}
	if !info.IsDir {
		size := info.Size
		entry.Size = &size
	}
	return Outcome{Entry: entry}
}
