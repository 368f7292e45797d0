package xstitch

import (
	"fmt"
	"io"
	"sort"
)

// FabricCounts are the Aida fabric counts (stitches per inch) reported
// for every pattern.
var FabricCounts = []int{14, 16, 18}

const cmPerInch = 2.54

// PaletteColor is one distinct color of a quantized image and the number
// of pixels that have it.
type PaletteColor struct {
	Color  RGB
	Pixels int
}

// ReportEntry is one legend line: a distinct matched color, the
// candidate it resolves to and its usage.
type ReportEntry struct {
	Symbol    string
	Color     RGB
	Candidate Candidate
	Index     int
	Pixels    int
	Stitches  int
}

// Line formats the entry the way the legend prints it, numbered from
// one: `3.[▲] 3371, 938 Black Brown, Coffee Brown - ULT DK [2+2] [12 stitches]`.
func (e ReportEntry) Line(n int) string {
	return fmt.Sprintf("%d.[%s] %s [%d stitches]",
		n, e.Symbol, e.Candidate.Label(), e.Stitches)
}

// FabricSize is the finished size of a pattern on one fabric count.
type FabricSize struct {
	Count    int
	WidthIn  float64
	HeightIn float64
	WidthCM  float64
	HeightCM float64
}

// NewFabricSize computes the physical size of a horizontal x vertical
// stitch pattern on a fabric with count stitches per inch.
func NewFabricSize(count, horizontal, vertical int) FabricSize {
	widthIn := float64(horizontal) / float64(count)
	heightIn := float64(vertical) / float64(count)
	return FabricSize{
		Count:    count,
		WidthIn:  widthIn,
		HeightIn: heightIn,
		WidthCM:  widthIn * cmPerInch,
		HeightCM: heightIn * cmPerInch,
	}
}

// Inches formats the size in inches with two decimals: `10.00" by 7.14"`.
func (s FabricSize) Inches() string {
	return fmt.Sprintf(`%.2f" by %.2f"`, s.WidthIn, s.HeightIn)
}

// Centimeters formats the size in centimeters with two decimals.
func (s FabricSize) Centimeters() string {
	return fmt.Sprintf("%.2fcm by %.2fcm", s.WidthCM, s.HeightCM)
}

func (s FabricSize) String() string {
	return fmt.Sprintf("Aida %d count: %s, %s",
		s.Count, s.Inches(), s.Centimeters())
}

// MatchQuality summarizes how far the source colors were from the
// candidates chosen for them, weighted by pixel count.
type MatchQuality struct {
	Method       string  `json:"method"`
	MeanDistance float64 `json:"meanDistance"`
	StdDev       float64 `json:"stdDev"`
	MaxDistance  float64 `json:"maxDistance"`
}

// PatternReport aggregates everything the host needs to print a legend.
type PatternReport struct {
	HorizontalStitches int
	VerticalStitches   int
	TotalCells         int
	TotalStitches      int
	Entries            []ReportEntry
	Sizes              []FabricSize
	Quality            *MatchQuality

	// Matches holds the match of every source color, in source order,
	// when the report was produced by Engine.Report.
	Matches []MatchResult
}

// DimensionLine formats the pattern dimensions:
// `Dimension:100 by 80 [7950 stitches/8000 cells]`.
func (r *PatternReport) DimensionLine() string {
	return fmt.Sprintf("Dimension:%d by %d [%d stitches/%d cells]",
		r.HorizontalStitches, r.VerticalStitches,
		r.TotalStitches, r.TotalCells)
}

// WriteText writes the legend, the dimension line and one line per
// fabric count.
func (r *PatternReport) WriteText(w io.Writer) error {
	for i, e := range r.Entries {
		if _, err := fmt.Fprintln(w, e.Line(i+1)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, r.DimensionLine()); err != nil {
		return err
	}
	for _, s := range r.Sizes {
		if _, err := fmt.Fprintln(w, s.String()); err != nil {
			return err
		}
	}
	return nil
}

// ReportBuilder turns matched colors and their pixel counts into a
// PatternReport. It must be given the same CandidateSet the colors were
// matched against.
type ReportBuilder struct {
	set      *CandidateSet
	cellSize int
}

// NewReportBuilder creates a builder for set. cellSize is the edge length
// in pixels of one stitch in the image the pixel counts come from; use 1
// when the image has one pixel per stitch.
func NewReportBuilder(set *CandidateSet, cellSize int) (*ReportBuilder, error) {
	if set.Len() == 0 {
		return nil, fmt.Errorf("%w: empty candidate set", ErrConfiguration)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size must be positive, got %d",
			ErrConfiguration, cellSize)
	}
	return &ReportBuilder{set: set, cellSize: cellSize}, nil
}

// Build aggregates colors (matched candidate colors with pixel counts)
// into a report for a horizontal x vertical stitch pattern. Repeated
// colors are summed. Entries are ordered by RGB so that symbols are
// assigned the same way on every run. A color that is not a candidate
// color of the set fails with ErrLookupFailure.
func (b *ReportBuilder) Build(
	colors []PaletteColor,
	horizontal, vertical int,
) (*PatternReport, error) {
	if horizontal <= 0 || vertical <= 0 {
		return nil, fmt.Errorf("%w: stitch counts must be positive, "+
			"got %d by %d", ErrConfiguration, horizontal, vertical)
	}

	pixels := NewOrderedMap[RGB, int]()
	for _, pc := range colors {
		if pc.Pixels < 0 {
			return nil, fmt.Errorf("%w: negative pixel count %d for %s",
				ErrConfiguration, pc.Pixels, pc.Color)
		}
		n, _ := pixels.Get(pc.Color)
		pixels.Set(pc.Color, n+pc.Pixels)
	}
	distinct := sortableRGB(pixels.Keys())
	sort.Sort(distinct)

	report := &PatternReport{
		HorizontalStitches: horizontal,
		VerticalStitches:   vertical,
		TotalCells:         horizontal * vertical,
		Entries:            make([]ReportEntry, 0, len(distinct)),
	}
	cellArea := b.cellSize * b.cellSize
	for i, color := range distinct {
		idx, ok := b.set.IndexOf(color)
		if !ok {
			return nil, fmt.Errorf("%w: matched color %s is not a "+
				"candidate of the %s-strand set", ErrLookupFailure,
				color, b.set.Arity())
		}
		count, _ := pixels.Get(color)
		stitches := count / cellArea
		report.Entries = append(report.Entries, ReportEntry{
			Symbol:    SymbolFor(i),
			Color:     color,
			Candidate: b.set.At(idx),
			Index:     idx,
			Pixels:    count,
			Stitches:  stitches,
		})
		report.TotalStitches += stitches
	}
	for _, count := range FabricCounts {
		report.Sizes = append(report.Sizes,
			NewFabricSize(count, horizontal, vertical))
	}
	return report, nil
}
