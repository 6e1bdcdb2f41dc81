package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/fsbrowse/pkg/filesystem"
	"github.com/shishobooks/fsbrowse/pkg/scanner"
)

func main() {
	log := logger.New()
	ctx := log.WithContext(context.Background())

	var opts struct {
		Concurrency int `short:"c" long:"concurrency" description:"Maximum number of concurrent metadata lookups" default:"16"`
	}

	args, err := flags.Parse(&opts)
	if err != nil {
		log.Err(err).Fatal("flags parse error")
	}

	if len(args) != 1 {
		fmt.Println("go run ./cmd/scripts/debug/scan [-c N] <path/to/dir>")
		os.Exit(1)
	}

	scn := scanner.New(filesystem.NewOS(), opts.Concurrency)

	start := time.Now()
	listing, err := scn.Scan(ctx, args[0])
	if err != nil {
		log.Err(err).Fatal("scan error")
	}
	elapsed := time.Since(start)

	for _, e := range listing.Entries {
		size := "-"
		if e.Size != nil {
			size = humanize.Bytes(uint64(*e.Size)) //nolint:gosec // sizes are never negative
		}
		fmt.Printf("%-40s dir=%-5v symlink=%-5v size=%-8s modified=%s\n", e.Name, e.IsDirectory, e.IsSymlink, size, e.ModTime().Format(time.RFC3339))
	}
	fmt.Printf("\n%s: %d entries in %s\n", listing.Path, len(listing.Entries), elapsed)
}
