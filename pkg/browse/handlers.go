package browse

import (
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishobooks/fsbrowse/pkg/errcodes"
	"github.com/shishobooks/fsbrowse/pkg/filesystem"
	"github.com/shishobooks/fsbrowse/pkg/models"
	"github.com/shishobooks/fsbrowse/pkg/sorting"
)

type handler struct {
	browseService *Service
}

func (h *handler) browse(c echo.Context) error {
	ctx := c.Request().Context()

	params := BrowseQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	listing, err := h.browseService.Browse(ctx, params.Path)
	if err != nil {
		return mapBrowseError(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, h.newResponse(listing, params)))
}

func (h *handler) up(c echo.Context) error {
	ctx := c.Request().Context()

	params := BrowseQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	listing, err := h.browseService.Up(ctx, params.Path)
	if err != nil {
		return mapBrowseError(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, h.newResponse(listing, params)))
}

func (h *handler) newResponse(listing *models.Listing, params BrowseQuery) *BrowseResponse {
	key, err := sorting.ParseKey(params.Sort)
	if err != nil {
		key = sorting.KeyName
	}
	dir, err := sorting.ParseDirection(params.Order)
	if err != nil {
		dir = sorting.Ascending
	}

	sorted := sorting.Sort(listing.Entries, key, dir)
	entries := make([]Entry, 0, len(sorted))
	for _, e := range sorted {
		entries = append(entries, newEntry(e))
	}

	resp := &BrowseResponse{
		Directory: listing.Path,
		IsRoot:    listing.IsRoot,
		Entries:   entries,
	}
	if !listing.IsRoot {
		resp.ParentPath = h.browseService.UpTarget(listing.Path)
	}
	return resp
}

func newEntry(e models.Entry) Entry {
	out := Entry{
		Name:         e.Name,
		Path:         e.Path,
		IsDirectory:  e.IsDirectory,
		IsSymlink:    e.IsSymlink,
		Size:         e.Size,
		LastModified: e.LastModified,
	}
	if e.Size != nil {
		out.SizeDisplay = humanize.Bytes(uint64(*e.Size)) //nolint:gosec // sizes are never negative
	}
	return out
}

func mapBrowseError(err error) error {
	if errors.Is(err, ErrOutsideRoot) {
		return errcodes.Forbidden("Browsing outside the root directory")
	}

	var enumErr *filesystem.EnumerationError
	if errors.As(err, &enumErr) {
		switch enumErr.Kind {
		case filesystem.KindNotFound:
			return errcodes.NotFound("Directory")
		case filesystem.KindPermissionDenied:
			return errcodes.Forbidden("Access to this directory")
		case filesystem.KindNotADirectory:
			return errcodes.NotADirectory(enumErr.Path)
		case filesystem.KindUnknown:
		}
	}

	return errors.WithStack(err)
}
