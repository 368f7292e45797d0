package imageutil

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	// ESC is the escape character that starts an ANSI sequence.
	ESC = "\u001b"

	upperHalfBlock = "▀"
	fullBlock      = "█"
)

// Swatch returns a truecolor ANSI sequence printing width full blocks
// of c, followed by a reset.
func Swatch(c RGB, width int) string {
	if width <= 0 {
		return ""
	}
	return formatANSICode(fgCode(c), "", fullBlock, width) + ESC + "[0m"
}

// WriteANSI renders img to w as truecolor ANSI art, two pixel rows per
// text line using upper half blocks. Transparent pixels render in the
// terminal's default colors. Runs of cells with the same colors share one
// escape sequence.
func WriteANSI(w io.Writer, img *RGBAImage) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < img.Height(); y += 2 {
		var currentFg, currentBg string
		count := 0
		for x := 0; x < img.Width(); x++ {
			fg, bg := cellColors(img, x, y)
			if fg != currentFg || bg != currentBg {
				if count > 0 {
					bw.WriteString(formatCell(currentFg, currentBg, count))
				}
				currentFg, currentBg = fg, bg
				count = 1
			} else {
				count++
			}
		}
		// Write the last run of the line
		if count > 0 {
			bw.WriteString(formatCell(currentFg, currentBg, count))
		}
		fmt.Fprintf(bw, "%s[0m\n", ESC)
	}
	return bw.Flush()
}

// cellColors returns the foreground (top pixel) and background (bottom
// pixel) codes of the text cell at column x covering rows y and y+1.
func cellColors(img *RGBAImage, x, y int) (fg, bg string) {
	if img.Opaque(x, y) {
		fg = fgCode(img.GetRGB(x, y))
	}
	if y+1 < img.Height() && img.Opaque(x, y+1) {
		bg = bgCode(img.GetRGB(x, y+1))
	}
	return fg, bg
}

func formatCell(fg, bg string, count int) string {
	if fg == "" && bg == "" {
		return ESC + "[0m" + strings.Repeat(" ", count)
	}
	if fg == "" {
		// Nothing on top: draw the lower half with a reversed block
		return ESC + "[0m" + formatANSICode(
			strings.Replace(bg, "48;", "38;", 1), "", "▄", count)
	}
	if bg == "" {
		return ESC + "[0m" + formatANSICode(fg, "", upperHalfBlock, count)
	}
	return formatANSICode(fg, bg, upperHalfBlock, count)
}

func fgCode(c RGB) string {
	return fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B)
}

func bgCode(c RGB) string {
	return fmt.Sprintf("48;2;%d;%d;%d", c.R, c.G, c.B)
}

// formatANSICode formats an ANSI color code with the given foreground and
// background colors, followed by the block character repeated count
// times.
func formatANSICode(fg, bg, block string, count int) string {
	var code strings.Builder
	code.WriteString(ESC)
	code.WriteByte('[')
	if fg != "" {
		code.WriteString(fg)
		if bg != "" {
			code.WriteByte(';')
		}
	}
	if bg != "" {
		code.WriteString(bg)
	}
	code.WriteByte('m')
	code.WriteString(strings.Repeat(block, count))
	return code.String()
}
