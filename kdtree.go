package xstitch

import (
	"math"
	"sort"
)

// colorNode represents a node in a KD-tree over candidate colors. Each
// node holds one candidate (its index in the candidate set and its
// color), a left child, a right child, and the axis along which the
// subtree is split. Colors in Left are <= Color on SplitAxis, colors in
// Right are >= Color on SplitAxis.
type colorNode struct {
	Index       int
	Color       RGB
	Left, Right *colorNode
	SplitAxis   int
}

type kdEntry struct {
	color RGB
	index int
}

// buildKDTree constructs a KD-tree over a candidate list. The entries
// slice is reordered in place.
func buildKDTree(entries []kdEntry) *colorNode {
	if len(entries) == 0 {
		return nil
	}

	// Choose splitting axis based on the dimension with the largest variance
	axis := chooseSplitAxis(entries)

	// Sort along the chosen axis; index keeps the order deterministic
	sort.Slice(entries, func(i, j int) bool {
		ci := getColorComponent(entries[i].color, axis)
		cj := getColorComponent(entries[j].color, axis)
		if ci != cj {
			return ci < cj
		}
		return entries[i].index < entries[j].index
	})

	median := len(entries) / 2
	return &colorNode{
		Index:     entries[median].index,
		Color:     entries[median].color,
		Left:      buildKDTree(entries[:median]),
		Right:     buildKDTree(entries[median+1:]),
		SplitAxis: axis,
	}
}

// chooseSplitAxis returns the index of the RGB axis with the largest
// variance.
func chooseSplitAxis(entries []kdEntry) int {
	var varR, varG, varB float64
	var meanR, meanG, meanB float64

	for _, e := range entries {
		meanR += float64(e.color.R)
		meanG += float64(e.color.G)
		meanB += float64(e.color.B)
	}
	n := float64(len(entries))
	meanR /= n
	meanG /= n
	meanB /= n

	for _, e := range entries {
		varR += math.Pow(float64(e.color.R)-meanR, 2)
		varG += math.Pow(float64(e.color.G)-meanG, 2)
		varB += math.Pow(float64(e.color.B)-meanB, 2)
	}

	if varR > varG && varR > varB {
		return 0 // R axis
	} else if varG > varB {
		return 1 // G axis
	}
	return 2 // B axis
}

// getColorComponent returns the component of an RGB color along the
// specified axis.
func getColorComponent(color RGB, axis int) uint8 {
	switch axis {
	case 0:
		return color.R
	case 1:
		return color.G
	default:
		return color.B
	}
}

// kdBest is the running best of a nearest-neighbor search.
type kdBest struct {
	index    int
	distance float64
}

// improves reports whether (distance, index) beats the current best.
// Equal distances resolve to the lower candidate index, which is the
// same winner a linear scan in construction order picks.
func (b kdBest) improves(distance float64, index int) bool {
	if b.index < 0 || distance < b.distance {
		return true
	}
	return distance == b.distance && index < b.index
}

// nearestNeighbor finds the candidate closest to target under an
// axis-weighted method. A subtree is skipped only when the distance
// along the split axis alone already exceeds the best distance, so ties
// in skipped subtrees are still found and the result is exact.
func (node *colorNode) nearestNeighbor(
	target RGB,
	method axisWeightedMethod,
	best kdBest,
) kdBest {
	if node == nil {
		return best
	}

	dist := method.Distance(target, node.Color)
	if best.improves(dist, node.Index) {
		best = kdBest{index: node.Index, distance: dist}
	}

	tc := getColorComponent(target, node.SplitAxis)
	nc := getColorComponent(node.Color, node.SplitAxis)
	next, other := node.Right, node.Left
	if tc < nc {
		next, other = node.Left, node.Right
	}

	best = next.nearestNeighbor(target, method, best)

	// Check if we need to search the other branch
	if method.axisTerm(node.SplitAxis, tc, nc) <= best.distance {
		best = other.nearestNeighbor(target, method, best)
	}
	return best
}
