package browse

import (
	"github.com/labstack/echo/v4"
	"github.com/shishobooks/fsbrowse/pkg/config"
	"github.com/shishobooks/fsbrowse/pkg/filesystem"
	"github.com/shishobooks/fsbrowse/pkg/scanner"
)

// NewServiceFromConfig builds a browse service over the OS filesystem.
func NewServiceFromConfig(cfg *config.Config) *Service {
	scn := scanner.New(filesystem.NewOS(), cfg.ScanConcurrency)
	return NewService(scn, Options{
		RootDirectory:      cfg.RootDirectory,
		DefaultDirectory:   cfg.DefaultDirectory,
		EmptyOnScanFailure: cfg.EmptyOnScanFailure,
		RestrictToRoot:     cfg.RestrictToRoot,
	})
}

func RegisterRoutes(e *echo.Echo, cfg *config.Config) {
	h := &handler{
		browseService: NewServiceFromConfig(cfg),
	}

	e.GET("/browse", h.browse)
	e.GET("/browse/up", h.up)
}
