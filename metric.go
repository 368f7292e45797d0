package xstitch

import (
	"fmt"
	"strings"
)

// ColorDistanceMethod is a distance metric between a target color and a
// candidate color. Smaller is closer. Implementations need not be
// symmetric: the target is always passed first.
type ColorDistanceMethod interface {
	Distance(target, candidate RGB) float64
	Name() string
}

// axisWeightedMethod is implemented by metrics that are a sum of one
// independent term per RGB axis. The KD-tree search relies on a single
// axis term being a lower bound of the full distance.
type axisWeightedMethod interface {
	ColorDistanceMethod
	axisTerm(axis int, target, candidate uint8) float64
}

// labMethod is implemented by metrics that operate on Lab values, so a
// Matcher can convert every candidate once instead of once per query.
type labMethod interface {
	ColorDistanceMethod
	labDistance(target, candidate Lab) float64
}

// PerceptualMethod weights channel differences by 0.3/0.59/0.11.
type PerceptualMethod struct{}

func (PerceptualMethod) Distance(target, candidate RGB) float64 {
	return PerceptualSqDistance(target, candidate)
}

func (PerceptualMethod) Name() string { return "perceptual" }

func (PerceptualMethod) axisTerm(axis int, target, candidate uint8) float64 {
	var w float64
	switch axis {
	case 0:
		w = perceptualWeightR
	case 1:
		w = perceptualWeightG
	default:
		w = perceptualWeightB
	}
	d := (float64(target) - float64(candidate)) * w
	return d * d
}

// EuclideanMethod is the plain squared distance in RGB space.
type EuclideanMethod struct{}

func (EuclideanMethod) Distance(target, candidate RGB) float64 {
	return EuclideanSqDistance(target, candidate)
}

func (EuclideanMethod) Name() string { return "euclidean" }

func (EuclideanMethod) axisTerm(_ int, target, candidate uint8) float64 {
	d := int(target) - int(candidate)
	return float64(d * d)
}

// DeltaEMethod compares colors in Lab space with DeltaE.
type DeltaEMethod struct{}

func (DeltaEMethod) Distance(target, candidate RGB) float64 {
	return DeltaE(RGBToLab(target), RGBToLab(candidate))
}

func (DeltaEMethod) Name() string { return "deltae" }

func (DeltaEMethod) labDistance(target, candidate Lab) float64 {
	return DeltaE(target, candidate)
}

// ParseColorMethod returns the distance method with the given name. The
// plug-in's menu names ("perceptive", "regular", "delta-e") are accepted
// alongside the canonical ones.
func ParseColorMethod(name string) (ColorDistanceMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "perceptual", "perceptive":
		return PerceptualMethod{}, nil
	case "euclidean", "regular", "rgb":
		return EuclideanMethod{}, nil
	case "deltae", "delta-e", "delta_e", "lab":
		return DeltaEMethod{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown color method %q "+
			"(options are perceptual, euclidean, deltae)",
			ErrConfiguration, name)
	}
}
