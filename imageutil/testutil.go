package imageutil

import "image/color"

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

// CreateColorBarsImage creates vertical bars of the given colors, each
// barWidth pixels wide.
func CreateColorBarsImage(barWidth, height int, colors []RGB) *RGBAImage {
	img := NewRGBAImage(barWidth*len(colors), height)
	for y := 0; y < height; y++ {
		for x := 0; x < img.Width(); x++ {
			img.SetRGB(x, y, colors[x/barWidth])
		}
	}
	return img
}

// CreateCheckerboardImage creates a checkerboard of two colors with
// squareSize pixel squares.
func CreateCheckerboardImage(width, height, squareSize int, a, b RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.SetRGB(x, y, a)
			} else {
				img.SetRGB(x, y, b)
			}
		}
	}
	return img
}

// ClearRect makes a rectangle of img fully transparent.
func ClearRect(img *RGBAImage, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetRGBA(x, y, color.RGBA{})
		}
	}
}

// CalculateMaxDiff calculates the maximum channel difference between two
// images, 256 when their sizes differ.
func CalculateMaxDiff(img1, img2 *RGBAImage) int {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return 256
	}

	maxDiff := 0
	for y := 0; y < img1.Height(); y++ {
		for x := 0; x < img1.Width(); x++ {
			c1 := img1.RGBAAt(x, y)
			c2 := img2.RGBAAt(x, y)
			for _, d := range []int{
				abs(int(c1.R) - int(c2.R)),
				abs(int(c1.G) - int(c2.G)),
				abs(int(c1.B) - int(c2.B)),
			} {
				if d > maxDiff {
					maxDiff = d
				}
			}
		}
	}
	return maxDiff
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
