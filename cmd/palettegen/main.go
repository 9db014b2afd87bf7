// Command palettegen writes the palette image of a label catalog, or dumps
// the built-in catalog so it can be edited.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/unixpickle/essentials"

	"labelmesh/internal/fsutil"
	"labelmesh/pkg/catalog"
	"labelmesh/pkg/palette"
)

func main() {
	var catalogPath string
	var outputPath string
	var dumpPath string
	flag.StringVar(&catalogPath, "catalog", "", "YAML or TOML catalog with an indexed palette")
	flag.StringVar(&outputPath, "output", "palette.png", "output palette image")
	flag.StringVar(&dumpPath, "dump-default", "", "write the built-in catalog as YAML to this path and exit")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:", os.Args[0], "[flags]")
		flag.PrintDefaults()
		os.Exit(1)
	}
	flag.Parse()

	if dumpPath != "" {
		essentials.Must(catalog.DefaultHSV().Save(dumpPath))
		return
	}

	var table palette.Table
	if catalogPath == "" {
		table = palette.DefaultTable
	} else {
		cat, err := catalog.Load(catalogPath)
		essentials.Must(err)
		if cat.Scheme != palette.Indexed {
			essentials.Die("catalog", catalogPath, "uses the", cat.Scheme, "scheme, which has no palette image")
		}
		table = cat.Table
	}

	enc, err := palette.NewEncoder(palette.Indexed, table)
	essentials.Must(err)
	img, err := enc.Build()
	essentials.Must(err)
	essentials.Must(fsutil.WriteFile(outputPath, func(w io.Writer) error {
		return palette.WriteImage(w, img)
	}))
	fmt.Printf("Wrote %d-entry palette to %s\n", len(table), outputPath)
}
