package xstitch

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Engine bundles a candidate set, a matcher over it and a per-color match
// cache. One Engine serves any number of palettes built against the same
// catalog, arity and metric, and is safe for concurrent use.
type Engine struct {
	// Configuration options
	Arity       Arity
	Threshold   int
	CellSize    int
	ColorMethod ColorDistanceMethod

	catalog   Catalog
	tablePath string
	logger    *log.Logger

	set     *CandidateSet
	matcher *Matcher
	cache   *matchCache

	buildTime time.Duration
}

// EngineOption is a functional option for configuring an Engine.
type EngineOption func(*Engine)

// NewEngine creates an Engine with the given options and builds its
// candidate set. Default values: the embedded DMC catalog, Arity=none,
// ColorMethod=PerceptualMethod{}, Threshold=BlendThreshold, CellSize=1.
// Configuration is validated before anything is built.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		Arity:       ArityNone,
		Threshold:   BlendThreshold,
		CellSize:    1,
		ColorMethod: PerceptualMethod{},
		logger:      log.New(io.Discard, "", 0),
		cache:       newMatchCache(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}

	begin := time.Now()
	set, err := e.buildSet()
	if err != nil {
		return nil, err
	}
	matcher, err := NewMatcher(set, e.ColorMethod)
	if err != nil {
		return nil, err
	}
	e.set = set
	e.matcher = matcher
	e.buildTime = time.Since(begin)

	pure, blends := set.Counts()
	e.logger.Printf("Total colors: %d", len(set.Catalog()))
	e.logger.Printf("Total colors after creating blends: %d "+
		"(%d pure, %d blends, %s strands, %s)",
		set.Len(), pure, blends, set.Arity(), e.buildTime)
	return e, nil
}

// WithCatalog sets the thread catalog candidates are built from.
func WithCatalog(catalog Catalog) EngineOption {
	return func(e *Engine) {
		e.catalog = catalog
	}
}

// WithArity sets the number of strands per stitch.
func WithArity(arity Arity) EngineOption {
	return func(e *Engine) {
		e.Arity = arity
	}
}

// WithColorMethod sets the color distance calculation method.
func WithColorMethod(method ColorDistanceMethod) EngineOption {
	return func(e *Engine) {
		e.ColorMethod = method
	}
}

// WithBlendThreshold sets the maximum per-channel difference between two
// threads that may be blended.
func WithBlendThreshold(threshold int) EngineOption {
	return func(e *Engine) {
		e.Threshold = threshold
	}
}

// WithCellSize sets the edge length in pixels of one stitch in the images
// whose pixel counts are reported.
func WithCellSize(size int) EngineOption {
	return func(e *Engine) {
		e.CellSize = size
	}
}

// WithCandidateTable loads the candidate set from a precomputed table
// file written by WriteCandidateTables instead of building it. The
// table's own catalog and threshold are used.
func WithCandidateTable(path string) EngineOption {
	return func(e *Engine) {
		e.tablePath = path
	}
}

// WithLogger sets the logger build statistics are written to. By default
// nothing is logged.
func WithLogger(logger *log.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

func (e *Engine) validate() error {
	if !e.Arity.Valid() {
		return fmt.Errorf("%w: unknown arity %d", ErrConfiguration, e.Arity)
	}
	if e.ColorMethod == nil {
		return fmt.Errorf("%w: no color method", ErrConfiguration)
	}
	if e.Threshold < 0 || e.Threshold > 255 {
		return fmt.Errorf("%w: blend threshold %d outside [0,255]",
			ErrConfiguration, e.Threshold)
	}
	if e.CellSize <= 0 {
		return fmt.Errorf("%w: cell size must be positive, got %d",
			ErrConfiguration, e.CellSize)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard, "", 0)
	}
	if e.tablePath == "" && e.catalog == nil {
		e.catalog = DefaultCatalog()
	}
	return nil
}

func (e *Engine) buildSet() (*CandidateSet, error) {
	if e.tablePath == "" {
		return BuildCandidatesThreshold(e.catalog, e.Arity, e.Threshold)
	}
	file, err := os.Open(e.tablePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open candidate table: %w", err)
	}
	defer file.Close()
	set, err := ReadCandidateTable(file, e.Arity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.tablePath, err)
	}
	if e.catalog != nil {
		e.logger.Printf("Using catalog from candidate table %s", e.tablePath)
	}
	e.catalog = set.Catalog()
	e.Threshold = set.Threshold()
	return set, nil
}

// Set returns the engine's candidate set.
func (e *Engine) Set() *CandidateSet { return e.set }

// Matcher returns the engine's matcher.
func (e *Engine) Matcher() *Matcher { return e.matcher }

// Match returns the candidate closest to target, consulting the cache
// first.
func (e *Engine) Match(target RGB) MatchResult {
	if result, ok := e.cache.getEntry(target); ok {
		return result
	}
	result := e.matcher.FindBest(target)
	e.cache.addEntry(result)
	return result
}

// MatchPalette matches every source color, in order.
func (e *Engine) MatchPalette(source []PaletteColor) []MatchResult {
	results := make([]MatchResult, len(source))
	for i, pc := range source {
		results[i] = e.Match(pc.Color)
	}
	return results
}

// Report matches every source color, aggregates pixel counts per chosen
// candidate color and builds the pattern report for a horizontal x
// vertical pattern. Quality summarizes the match distances weighted by
// pixel count; it is nil when source is empty.
func (e *Engine) Report(
	source []PaletteColor,
	horizontal, vertical int,
) (*PatternReport, error) {
	builder, err := NewReportBuilder(e.set, e.CellSize)
	if err != nil {
		return nil, err
	}
	results := e.MatchPalette(source)
	matched := make([]PaletteColor, len(results))
	for i, result := range results {
		matched[i] = PaletteColor{
			Color:  result.Candidate.Color,
			Pixels: source[i].Pixels,
		}
	}
	report, err := builder.Build(matched, horizontal, vertical)
	if err != nil {
		return nil, err
	}
	report.Quality = e.quality(source, results)
	report.Matches = results
	return report, nil
}

func (e *Engine) quality(
	source []PaletteColor,
	results []MatchResult,
) *MatchQuality {
	if len(results) == 0 {
		return nil
	}
	distances := make([]float64, len(results))
	weights := make([]float64, len(results))
	for i, result := range results {
		distances[i] = result.Distance
		weights[i] = float64(source[i].Pixels)
	}
	total := floats.Sum(weights)
	if total == 0 {
		weights = nil
		total = float64(len(distances))
	}
	q := &MatchQuality{
		Method:       e.ColorMethod.Name(),
		MeanDistance: stat.Mean(distances, weights),
		MaxDistance:  floats.Max(distances),
	}
	// Unbiased weighted variance needs more than one unit of weight
	if total > 1 {
		q.StdDev = stat.StdDev(distances, weights)
	}
	return q
}

// CacheStats returns cache hit/miss statistics.
func (e *Engine) CacheStats() (hits, misses int, hitRate float64) {
	hits, misses, _ = e.cache.stats()
	total := hits + misses
	if total == 0 {
		return 0, 0, 0
	}
	return hits, misses, float64(hits) / float64(total)
}

// CacheSize returns the number of distinct target colors cached.
func (e *Engine) CacheSize() int {
	_, _, size := e.cache.stats()
	return size
}

// ResetStats clears the match cache and its counters.
func (e *Engine) ResetStats() {
	e.cache.reset()
}

// BuildTime returns how long building the candidate set and matcher took.
func (e *Engine) BuildTime() time.Duration {
	return e.buildTime
}
