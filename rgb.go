package xstitch

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a color in the RGB color space with 8-bit channels,
// where each channel ranges from 0 to 255. Thread colors, blend colors
// and the palette colors handed in by the host are all RGB values.
type RGB struct {
	R, G, B uint8
}

// toUint32 converts an RGB color to a 32-bit unsigned integer
func (c RGB) toUint32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// rgbFromUint32 converts a 32-bit unsigned integer to an RGB color
func rgbFromUint32(color uint32) RGB {
	return RGB{
		R: uint8(color >> 16),
		G: uint8(color >> 8),
		B: uint8(color),
	}
}

// ParseHex parses a "#RRGGBB" or "#RGB" string into an RGB color. The
// leading '#' is optional.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("error parsing color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// Hex returns the color formatted as "#rrggbb".
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

// String implements fmt.Stringer as "(r,g,b)".
func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}

// maxChannelDiff returns the largest per-channel absolute difference
// between two colors.
func (c RGB) maxChannelDiff(other RGB) int {
	return max(absDiff(c.R, other.R), absDiff(c.G, other.G),
		absDiff(c.B, other.B))
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a) - int(b)
	}
	return int(b) - int(a)
}

// Less orders colors by red, then green, then blue.
func (c RGB) Less(other RGB) bool {
	if c.R != other.R {
		return c.R < other.R
	}
	if c.G != other.G {
		return c.G < other.G
	}
	return c.B < other.B
}

type sortableRGB []RGB

func (s sortableRGB) Len() int           { return len(s) }
func (s sortableRGB) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s sortableRGB) Less(i, j int) bool { return s[i].Less(s[j]) }
