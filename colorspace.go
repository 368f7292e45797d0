package xstitch

import "math"

// Lab is a color in the CIE L*a*b* color space, D65 reference white.
type Lab struct {
	L, A, B float64
}

// D65 reference white.
const (
	whiteX = 0.95047
	whiteY = 1.00000
	whiteZ = 1.08883
)

// RGBToLab converts an sRGB color to CIE L*a*b*. The sRGB channels are
// linearized with the 2.4 gamma curve (linear segment below 0.04045),
// mapped to XYZ and normalized by the D65 white point, then compressed
// with a cube root (linear segment below 0.008856).
func RGBToLab(c RGB) Lab {
	r := linearize(float64(c.R) / 255.0)
	g := linearize(float64(c.G) / 255.0)
	b := linearize(float64(c.B) / 255.0)

	x := labCompand((r*0.4124 + g*0.3576 + b*0.1805) / whiteX)
	y := labCompand((r*0.2126 + g*0.7152 + b*0.0722) / whiteY)
	z := labCompand((r*0.0193 + g*0.1192 + b*0.9505) / whiteZ)

	return Lab{
		L: 116.0*y - 16.0,
		A: 500.0 * (x - y),
		B: 200.0 * (y - z),
	}
}

func linearize(v float64) float64 {
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

func labCompand(t float64) float64 {
	if t > 0.008856 {
		return math.Pow(t, 1.0/3.0)
	}
	return 7.787*t + 16.0/116.0
}

// DeltaE returns the color difference between two Lab colors using the
// CIE94 graphic-arts weighting, with the chroma scale factors taken from
// the first argument only:
//
//	sc = 1 + 0.045*C1, sh = 1 + 0.015*C1, C1 = sqrt(a1² + b1²)
//
// The function is therefore not symmetric. Callers pass the target color
// first so that every candidate is scaled against the same reference.
func DeltaE(a, b Lab) float64 {
	deltaL := a.L - b.L
	deltaA := a.A - b.A
	deltaB := a.B - b.B
	c1 := math.Sqrt(a.A*a.A + a.B*a.B)
	c2 := math.Sqrt(b.A*b.A + b.B*b.B)
	deltaC := c1 - c2

	deltaH := deltaA*deltaA + deltaB*deltaB - deltaC*deltaC
	if deltaH < 0 {
		deltaH = 0
	} else {
		deltaH = math.Sqrt(deltaH)
	}

	sc := 1.0 + 0.045*c1
	sh := 1.0 + 0.015*c1
	dc := deltaC / sc
	dh := deltaH / sh

	i := deltaL*deltaL + dc*dc + dh*dh
	if i < 0 {
		return 0
	}
	return math.Sqrt(i)
}

// Channel weights of the perceptual distance.
const (
	perceptualWeightR = 0.3
	perceptualWeightG = 0.59
	perceptualWeightB = 0.11
)

// PerceptualSqDistance returns the squared luminance-weighted distance
// between two colors. Each channel difference is scaled by its weight
// before squaring. The result is not rooted since only the ordering of
// distances matters.
func PerceptualSqDistance(a, b RGB) float64 {
	dr := (float64(a.R) - float64(b.R)) * perceptualWeightR
	dg := (float64(a.G) - float64(b.G)) * perceptualWeightG
	db := (float64(a.B) - float64(b.B)) * perceptualWeightB
	return dr*dr + dg*dg + db*db
}

// EuclideanSqDistance returns the squared Euclidean distance between two
// colors in RGB space.
func EuclideanSqDistance(a, b RGB) float64 {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return float64(dr*dr + dg*dg + db*db)
}
