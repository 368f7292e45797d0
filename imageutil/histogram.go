package imageutil

import "sort"

// ColorCount is one distinct image color and the number of pixels that
// have it.
type ColorCount struct {
	Color  RGB
	Pixels int
}

// ColorCounts returns the distinct colors of img with their pixel counts,
// ordered by RGB. Fully transparent pixels are not stitched and are
// skipped.
func ColorCounts(img *RGBAImage) []ColorCount {
	counts := make(map[RGB]int)
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			if !img.Opaque(x, y) {
				continue
			}
			counts[img.GetRGB(x, y)]++
		}
	}

	result := make([]ColorCount, 0, len(counts))
	for c, n := range counts {
		result = append(result, ColorCount{Color: c, Pixels: n})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Color.Less(result[j].Color)
	})
	return result
}

// Recolor returns a copy of img with every opaque pixel replaced by
// mapColor of its color. mapColor is called once per distinct color.
func Recolor(img *RGBAImage, mapColor func(RGB) RGB) *RGBAImage {
	out := img.Clone()
	mapped := make(map[RGB]RGB)
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			if !out.Opaque(x, y) {
				continue
			}
			c := out.GetRGB(x, y)
			m, ok := mapped[c]
			if !ok {
				m = mapColor(c)
				mapped[c] = m
			}
			out.SetRGB(x, y, m)
		}
	}
	return out
}
