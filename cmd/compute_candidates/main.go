package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	xstitch "github.com/mitsuami-megane/Cross-Stitch-DMC-replace-colors"
)

func main() {
	catalogName := flag.String("catalog", xstitch.DefaultCatalogName,
		"Thread catalog: embedded name or JSON file")
	threshold := flag.Int("threshold", xstitch.BlendThreshold,
		"Largest per-channel difference of blended threads")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [options] <output.candidates>\n\n",
			filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	catalog, err := xstitch.LoadCatalog(*catalogName)
	if err != nil {
		log.Fatalf("Failed to load catalog %s: %v", *catalogName, err)
	}

	arities := []xstitch.Arity{
		xstitch.ArityNone,
		xstitch.Arity2,
		xstitch.Arity3,
		xstitch.Arity4,
		xstitch.Arity5,
		xstitch.Arity6,
	}
	fmt.Printf("Computing candidate tables for %d threads\n", len(catalog))

	var buf bytes.Buffer
	if err := xstitch.WriteCandidateTables(&buf, catalog, *threshold,
		arities...); err != nil {
		log.Fatalf("Failed to compute candidate tables for %s: %v", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		log.Fatalf("Failed to write compressed file %s: %v", path, err)
	}
	fmt.Printf("Wrote %d bytes to %s\n", buf.Len(), path)
}
