package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	xstitch "github.com/mitsuami-megane/Cross-Stitch-DMC-replace-colors"
	"github.com/mitsuami-megane/Cross-Stitch-DMC-replace-colors/imageutil"
	"github.com/mitsuami-megane/Cross-Stitch-DMC-replace-colors/threaddb"
)

type cliOptions struct {
	inputPath      string
	colors         string
	catalog        string
	dbCatalog      string
	importDB       string
	blend          string
	method         string
	width          int
	height         int
	cellSize       int
	threshold      int
	candidatesPath string
	previewPath    string
	alternatives   int
	json           bool
	ansi           bool
	swatches       bool
	verbose        bool
}

func main() {
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("xstitch: %v", err)
	}
	if err := run(context.Background(), opts, os.Stdout); err != nil {
		log.Fatalf("xstitch: %v", err)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (cliOptions, error) {
	var opts cliOptions
	fs.StringVar(&opts.inputPath, "input", "",
		"Quantized pattern image (PNG, JPEG, GIF, BMP, TIFF, WebP)")
	fs.StringVar(&opts.colors, "colors", "",
		"Source colors instead of an image: #RRGGBB=pixels,...")
	fs.StringVar(&opts.catalog, "catalog", xstitch.DefaultCatalogName,
		"Thread catalog: embedded name, JSON file or SQLite .db file")
	fs.StringVar(&opts.dbCatalog, "db-catalog", xstitch.DefaultCatalogName,
		"Catalog name inside a SQLite catalog database")
	fs.StringVar(&opts.importDB, "import-db", "",
		"Store the loaded catalog in this SQLite database under -db-catalog and exit")
	fs.StringVar(&opts.blend, "blend", "none",
		"Strands per stitch for blends: none, 2, 3, 4, 5, 6")
	fs.StringVar(&opts.method, "method", "perceptual",
		"Color distance method: perceptual, euclidean, deltae")
	fs.IntVar(&opts.width, "width", 0,
		"Horizontal stitches (default: image width / cellsize)")
	fs.IntVar(&opts.height, "height", 0,
		"Vertical stitches (default: image height / cellsize)")
	fs.IntVar(&opts.cellSize, "cellsize", 1,
		"Pixels per stitch edge in the input image")
	fs.IntVar(&opts.threshold, "threshold", xstitch.BlendThreshold,
		"Largest per-channel difference of blended threads")
	fs.StringVar(&opts.candidatesPath, "candidates", "",
		"Precomputed candidate table written by compute_candidates")
	fs.StringVar(&opts.previewPath, "preview", "",
		"Write the image recolored with the chosen threads to this path")
	fs.IntVar(&opts.alternatives, "alternatives", 0,
		"Also list the N next closest candidates for every color")
	fs.BoolVar(&opts.json, "json", false, "Print the report as JSON")
	fs.BoolVar(&opts.ansi, "ansi", false,
		"Print the recolored image to the terminal as ANSI art")
	fs.BoolVar(&opts.swatches, "swatches", false,
		"Print a color swatch before every legend line")
	fs.BoolVar(&opts.verbose, "v", false, "Log build statistics to stderr")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s -input FILE [options]\n\n",
			filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.inputPath = strings.TrimSpace(opts.inputPath)
	opts.catalog = strings.TrimSpace(opts.catalog)
	opts.importDB = strings.TrimSpace(opts.importDB)

	if opts.importDB != "" {
		return opts, nil
	}
	if opts.inputPath == "" && opts.colors == "" {
		fs.Usage()
		return opts, errors.New("missing required -input image or -colors list")
	}
	if opts.inputPath != "" && opts.colors != "" {
		return opts, errors.New("-input and -colors are mutually exclusive")
	}
	if (opts.previewPath != "" || opts.ansi) && opts.inputPath == "" {
		return opts, errors.New("-preview and -ansi need an -input image")
	}
	return opts, nil
}

func run(ctx context.Context, opts cliOptions, out io.Writer) error {
	logOut := io.Discard
	if opts.verbose {
		logOut = os.Stderr
	}
	logger := log.New(logOut, "xstitch: ", log.LstdFlags)

	var catalog xstitch.Catalog
	if opts.candidatesPath == "" || opts.importDB != "" {
		var err error
		catalog, err = loadCatalog(ctx, opts.catalog, opts.dbCatalog)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
	}
	if opts.importDB != "" {
		return importCatalog(ctx, opts.importDB, opts.dbCatalog, catalog, out)
	}

	arity, err := xstitch.ParseArity(opts.blend)
	if err != nil {
		return err
	}
	method, err := xstitch.ParseColorMethod(opts.method)
	if err != nil {
		return err
	}
	engineOpts := []xstitch.EngineOption{
		xstitch.WithArity(arity),
		xstitch.WithColorMethod(method),
		xstitch.WithBlendThreshold(opts.threshold),
		xstitch.WithCellSize(opts.cellSize),
		xstitch.WithLogger(logger),
	}
	if opts.candidatesPath != "" {
		engineOpts = append(engineOpts,
			xstitch.WithCandidateTable(opts.candidatesPath))
	} else {
		engineOpts = append(engineOpts, xstitch.WithCatalog(catalog))
	}
	engine, err := xstitch.NewEngine(engineOpts...)
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}
	logger.Printf("Candidate set ready in %s", engine.BuildTime())

	var (
		source []xstitch.PaletteColor
		img    *imageutil.RGBAImage
	)
	if opts.inputPath != "" {
		img, err = imageutil.LoadImage(opts.inputPath)
		if err != nil {
			return err
		}
		source = paletteFromImage(img)
		if opts.width == 0 {
			opts.width = img.Width() / opts.cellSize
		}
		if opts.height == 0 {
			opts.height = img.Height() / opts.cellSize
		}
	} else {
		source, err = parseColors(opts.colors)
		if err != nil {
			return err
		}
	}

	report, err := engine.Report(source, opts.width, opts.height)
	if err != nil {
		return err
	}
	hits, misses, hitRate := engine.CacheStats()
	logger.Printf("Matched %d source colors (cache hits %d, misses %d, "+
		"hit rate %.2f)", len(source), hits, misses, hitRate)

	var alternatives map[xstitch.RGB][]xstitch.MatchResult
	if opts.alternatives > 0 {
		alternatives = rankAlternatives(engine, source, opts.alternatives)
	}

	var preview *imageutil.RGBAImage
	if opts.previewPath != "" || opts.ansi {
		preview = imageutil.Recolor(img, func(c imageutil.RGB) imageutil.RGB {
			m := engine.Match(xstitch.RGB{R: c.R, G: c.G, B: c.B})
			return toImageRGB(m.Candidate.Color)
		})
	}
	if opts.previewPath != "" {
		if err := imageutil.SaveImage(preview.RGBA, opts.previewPath); err != nil {
			return err
		}
		logger.Printf("Preview written to %s", opts.previewPath)
	}

	if opts.json {
		return writeJSON(out, report, source, engine, alternatives)
	}
	if opts.ansi {
		if err := imageutil.WriteANSI(out, preview); err != nil {
			return err
		}
	}
	return writeText(out, report, alternatives, opts.swatches)
}

func loadCatalog(ctx context.Context, name, dbCatalog string) (xstitch.Catalog, error) {
	if strings.EqualFold(filepath.Ext(name), ".db") {
		database, err := threaddb.Open(ctx, name)
		if err != nil {
			return nil, err
		}
		defer database.Close()
		return threaddb.LoadCatalog(ctx, database, dbCatalog)
	}
	return xstitch.LoadCatalog(name)
}

func importCatalog(
	ctx context.Context,
	dbPath, name string,
	catalog xstitch.Catalog,
	out io.Writer,
) error {
	database, err := threaddb.Bootstrap(ctx, dbPath)
	if err != nil {
		return err
	}
	defer database.Close()
	if err := threaddb.SaveCatalog(ctx, database, name, catalog); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Stored %d threads as %q in %s\n",
		len(catalog), name, dbPath)
	return err
}

func paletteFromImage(img *imageutil.RGBAImage) []xstitch.PaletteColor {
	counts := imageutil.ColorCounts(img)
	source := make([]xstitch.PaletteColor, len(counts))
	for i, cc := range counts {
		source[i] = xstitch.PaletteColor{
			Color:  xstitch.RGB{R: cc.Color.R, G: cc.Color.G, B: cc.Color.B},
			Pixels: cc.Pixels,
		}
	}
	return source
}

func toImageRGB(c xstitch.RGB) imageutil.RGB {
	return imageutil.RGB{R: c.R, G: c.G, B: c.B}
}

// parseColors parses "#RRGGBB=pixels" items separated by commas. A
// missing pixel count means one pixel.
func parseColors(list string) ([]xstitch.PaletteColor, error) {
	var source []xstitch.PaletteColor
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		hex, count, hasCount := strings.Cut(item, "=")
		color, err := xstitch.ParseHex(strings.TrimSpace(hex))
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", item, err)
		}
		pixels := 1
		if hasCount {
			pixels, err = strconv.Atoi(strings.TrimSpace(count))
			if err != nil || pixels < 0 {
				return nil, fmt.Errorf("color %q: invalid pixel count", item)
			}
		}
		source = append(source, xstitch.PaletteColor{Color: color, Pixels: pixels})
	}
	if len(source) == 0 {
		return nil, errors.New("-colors list is empty")
	}
	return source, nil
}

func rankAlternatives(
	engine *xstitch.Engine,
	source []xstitch.PaletteColor,
	n int,
) map[xstitch.RGB][]xstitch.MatchResult {
	alternatives := make(map[xstitch.RGB][]xstitch.MatchResult, len(source))
	for _, pc := range source {
		ranked := engine.Matcher().Rank(pc.Color, n+1)
		if len(ranked) > 0 {
			ranked = ranked[1:]
		}
		alternatives[pc.Color] = ranked
	}
	return alternatives
}
