package main

import (
	"encoding/json"
	"fmt"
	"io"

	xstitch "github.com/mitsuami-megane/Cross-Stitch-DMC-replace-colors"
	"github.com/mitsuami-megane/Cross-Stitch-DMC-replace-colors/imageutil"
)

type jsonThread struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type jsonCandidate struct {
	Kind     string      `json:"kind"`
	Label    string      `json:"label"`
	Color    string      `json:"color"`
	A        jsonThread  `json:"a"`
	B        *jsonThread `json:"b,omitempty"`
	StrandsA int         `json:"strandsA"`
	StrandsB int         `json:"strandsB"`
	Split    bool        `json:"split"`
}

type jsonMatch struct {
	Source       string          `json:"source"`
	Pixels       int             `json:"pixels"`
	Candidate    jsonCandidate   `json:"candidate"`
	Distance     float64         `json:"distance"`
	Alternatives []jsonAlternate `json:"alternatives,omitempty"`
}

type jsonAlternate struct {
	Candidate jsonCandidate `json:"candidate"`
	Distance  float64       `json:"distance"`
}

type jsonEntry struct {
	Symbol    string        `json:"symbol"`
	Candidate jsonCandidate `json:"candidate"`
	Pixels    int           `json:"pixels"`
	Stitches  int           `json:"stitches"`
}

type jsonSize struct {
	Count    int     `json:"count"`
	WidthIn  float64 `json:"widthIn"`
	HeightIn float64 `json:"heightIn"`
	WidthCM  float64 `json:"widthCm"`
	HeightCM float64 `json:"heightCm"`
}

type jsonReport struct {
	Arity              string                `json:"arity"`
	Method             string                `json:"method"`
	HorizontalStitches int                   `json:"horizontalStitches"`
	VerticalStitches   int                   `json:"verticalStitches"`
	TotalCells         int                   `json:"totalCells"`
	TotalStitches      int                   `json:"totalStitches"`
	Matches            []jsonMatch           `json:"matches"`
	Legend             []jsonEntry           `json:"legend"`
	Sizes              []jsonSize            `json:"sizes"`
	Quality            *xstitch.MatchQuality `json:"quality,omitempty"`
}

func toJSONThread(t xstitch.Thread) jsonThread {
	return jsonThread{Code: t.Code, Name: t.Name, Color: t.Color.Hex()}
}

func toJSONCandidate(c xstitch.Candidate) jsonCandidate {
	a, b := c.Strands()
	jc := jsonCandidate{
		Kind:     c.Kind.String(),
		Label:    c.Label(),
		Color:    c.Color.Hex(),
		A:        toJSONThread(c.A),
		StrandsA: a,
		StrandsB: b,
		Split:    c.Split != nil,
	}
	if c.IsBlend() {
		tb := toJSONThread(c.B)
		jc.B = &tb
	}
	return jc
}

func writeJSON(
	out io.Writer,
	report *xstitch.PatternReport,
	source []xstitch.PaletteColor,
	engine *xstitch.Engine,
	alternatives map[xstitch.RGB][]xstitch.MatchResult,
) error {
	jr := jsonReport{
		Arity:              engine.Set().Arity().String(),
		Method:             engine.ColorMethod.Name(),
		HorizontalStitches: report.HorizontalStitches,
		VerticalStitches:   report.VerticalStitches,
		TotalCells:         report.TotalCells,
		TotalStitches:      report.TotalStitches,
		Quality:            report.Quality,
	}
	for i, result := range report.Matches {
		m := jsonMatch{
			Source:    result.Target.Hex(),
			Pixels:    source[i].Pixels,
			Candidate: toJSONCandidate(result.Candidate),
			Distance:  result.Distance,
		}
		for _, alt := range alternatives[result.Target] {
			m.Alternatives = append(m.Alternatives, jsonAlternate{
				Candidate: toJSONCandidate(alt.Candidate),
				Distance:  alt.Distance,
			})
		}
		jr.Matches = append(jr.Matches, m)
	}
	for _, e := range report.Entries {
		jr.Legend = append(jr.Legend, jsonEntry{
			Symbol:    e.Symbol,
			Candidate: toJSONCandidate(e.Candidate),
			Pixels:    e.Pixels,
			Stitches:  e.Stitches,
		})
	}
	for _, s := range report.Sizes {
		jr.Sizes = append(jr.Sizes, jsonSize(s))
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(jr)
}

func writeText(
	out io.Writer,
	report *xstitch.PatternReport,
	alternatives map[xstitch.RGB][]xstitch.MatchResult,
	swatches bool,
) error {
	for _, result := range report.Matches {
		if _, err := fmt.Fprintf(out, "%s -> %s (%.2f)\n",
			result.Target.Hex(), result.Candidate.Label(),
			result.Distance); err != nil {
			return err
		}
		for _, alt := range alternatives[result.Target] {
			if _, err := fmt.Fprintf(out, "    or %s (%.2f)\n",
				alt.Candidate.Label(), alt.Distance); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	if err := writeLegend(out, report, swatches); err != nil {
		return err
	}
	if q := report.Quality; q != nil {
		_, err := fmt.Fprintf(out, "Match distance (%s): mean %.2f, "+
			"std dev %.2f, max %.2f\n",
			q.Method, q.MeanDistance, q.StdDev, q.MaxDistance)
		return err
	}
	return nil
}

// writeLegend writes the report text, with a swatch of the candidate
// color in front of every legend line when swatches is set.
func writeLegend(out io.Writer, report *xstitch.PatternReport, swatches bool) error {
	if !swatches {
		return report.WriteText(out)
	}
	for i, e := range report.Entries {
		if _, err := fmt.Fprintf(out, "%s %s\n",
			imageutil.Swatch(toImageRGB(e.Color), 2), e.Line(i+1)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(out, report.DimensionLine()); err != nil {
		return err
	}
	for _, s := range report.Sizes {
		if _, err := fmt.Fprintln(out, s.String()); err != nil {
			return err
		}
	}
	return nil
}
