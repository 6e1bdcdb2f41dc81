package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/fsbrowse/pkg/browse"
	"github.com/shishobooks/fsbrowse/pkg/config"
	"github.com/shishobooks/fsbrowse/pkg/models"
	"github.com/shishobooks/fsbrowse/pkg/pathnav"
	"github.com/shishobooks/fsbrowse/pkg/sorting"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	svc := browse.NewServiceFromConfig(cfg)

	sortFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "sort",
			Usage: "sort key (name, size, last_modified, is_directory)",
			Value: string(sorting.KeyName),
		},
		&cli.StringFlag{
			Name:  "order",
			Usage: "sort direction (asc, desc)",
			Value: string(sorting.Ascending),
		},
	}

	app := &cli.App{
		Name:        "fsls",
		Usage:       "browse directories from the terminal",
		Description: "Lists directories the same way the fsbrowse API does",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "list a directory",
				ArgsUsage: "[PATH]",
				Flags:     sortFlags,
				Action: func(c *cli.Context) error {
					listing, err := svc.Browse(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return printListing(c, listing)
				},
			},
			{
				Name:      "up",
				Usage:     "list the parent of a directory",
				ArgsUsage: "[PATH]",
				Flags:     sortFlags,
				Action: func(c *cli.Context) error {
					listing, err := svc.Up(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return printListing(c, listing)
				},
			},
			{
				Name:      "parent",
				Usage:     "print the parent path of PATH",
				ArgsUsage: "PATH",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("parent takes exactly one PATH", 1)
					}
					fmt.Fprintln(c.App.Writer, pathnav.ParentOf(c.Args().First()))
					return nil
				},
			},
		},
	}

	err = app.Run(os.Args)
	if err != nil {
		log.Err(err).Fatal("fsls error")
	}
}

func printListing(c *cli.Context, listing *models.Listing) error {
	key, err := sorting.ParseKey(c.String("sort"))
	if err != nil {
		return err
	}
	dir, err := sorting.ParseDirection(c.String("order"))
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "%s\n", listing.Path)
	return writeEntries(c.App.Writer, sorting.Sort(listing.Entries, key, dir), time.Now())
}

func writeEntries(out io.Writer, entries []models.Entry, now time.Time) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		name := e.Name
		if e.IsDirectory && !e.IsParent() {
			name += "/"
		}
		if e.IsSymlink {
			name += "@"
		}

		size := "-"
		if e.Size != nil {
			size = humanize.Bytes(uint64(*e.Size)) //nolint:gosec // sizes are never negative
		}

		modified := "-"
		if e.LastModified != nil {
			modified = humanize.RelTime(e.ModTime(), now, "ago", "from now")
		}

		fmt.Fprintf(w, "%s\t%s\t%s\n", name, size, modified)
	}
	return w.Flush()
}
