package xstitch

import (
	"fmt"
	"strings"
)

// Arity selects which blends are generated besides the pure threads.
type Arity int

const (
	ArityNone Arity = iota // pure threads only
	Arity2                 // 2 strands, 50/50
	Arity3                 // 3 strands, 1+2 and 2+1
	Arity4                 // 4 strands, 2+2, 1+3, 3+1
	Arity5                 // 5 strands, 1+4, 4+1, 2+3, 3+2
	Arity6                 // 6 strands, 1+5, 5+1, 2+4, 4+2, 3+3
)

// BlendThreshold is the largest per-channel difference between two
// threads that may still be blended together.
const BlendThreshold = 50

var arityNames = map[Arity]string{
	ArityNone: "none",
	Arity2:    "2",
	Arity3:    "3",
	Arity4:    "4",
	Arity5:    "5",
	Arity6:    "6",
}

func (a Arity) String() string {
	if name, ok := arityNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Arity(%d)", int(a))
}

// Strands returns the number of strands stitched together, 1 for
// ArityNone.
func (a Arity) Strands() int {
	if a == ArityNone {
		return 1
	}
	return int(a) + 1
}

// Valid reports whether a is one of the defined arities.
func (a Arity) Valid() bool {
	_, ok := arityNames[a]
	return ok
}

// ParseArity parses "none"/"0"/"1" or a strand count "2".."6", with an
// optional "-strand" suffix.
func ParseArity(s string) (Arity, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "-strand")
	switch s {
	case "none", "0", "1", "":
		return ArityNone, nil
	case "2":
		return Arity2, nil
	case "3":
		return Arity3, nil
	case "4":
		return Arity4, nil
	case "5":
		return Arity5, nil
	case "6":
		return Arity6, nil
	}
	return ArityNone, fmt.Errorf("%w: unknown blend arity %q "+
		"(options are none, 2, 3, 4, 5, 6)", ErrConfiguration, s)
}

// blendVariant is one strand ratio emitted for every admissible pair
// (t1, t2) with t1 before t2 in the catalog. When swap is set the
// second thread is listed first.
type blendVariant struct {
	swap     bool
	strandsA uint8
	strandsB uint8
}

// blendVariants lists, per arity, the blends emitted for a pair in
// emission order. The order is part of the tie-break contract.
var blendVariants = map[Arity][]blendVariant{
	Arity2: {{false, 1, 1}},
	Arity3: {{false, 1, 2}, {true, 1, 2}},
	Arity4: {{false, 2, 2}, {false, 1, 3}, {true, 1, 3}},
	Arity5: {{false, 1, 4}, {true, 1, 4}, {false, 2, 3}, {true, 2, 3}},
	Arity6: {{false, 1, 5}, {true, 1, 5}, {false, 2, 4}, {true, 2, 4},
		{false, 3, 3}},
}

// BuildCandidates builds the candidate set for a catalog and arity using
// the default BlendThreshold.
func BuildCandidates(catalog Catalog, arity Arity) (*CandidateSet, error) {
	return BuildCandidatesThreshold(catalog, arity, BlendThreshold)
}

// BuildCandidatesThreshold builds the candidate set for a catalog and
// arity. For every thread x in catalog order it emits the pure thread,
// then for every later thread y whose channels all lie within threshold
// of x, one blend per strand ratio of the arity. Cost is O(N²) in the
// catalog size.
func BuildCandidatesThreshold(
	catalog Catalog,
	arity Arity,
	threshold int,
) (*CandidateSet, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	if !arity.Valid() {
		return nil, fmt.Errorf("%w: unknown blend arity %d",
			ErrConfiguration, int(arity))
	}
	if threshold < 0 || threshold > 255 {
		return nil, fmt.Errorf("%w: blend threshold %d outside 0..255",
			ErrConfiguration, threshold)
	}

	variants := blendVariants[arity]
	candidates := make([]Candidate, 0, len(catalog)*(1+len(variants)))
	for x := range catalog {
		candidates = append(candidates, pureCandidate(catalog[x]))
		if len(variants) == 0 {
			continue
		}
		for y := x + 1; y < len(catalog); y++ {
			t1, t2 := catalog[x], catalog[y]
			if t1.Color.maxChannelDiff(t2.Color) > threshold {
				continue
			}
			for _, v := range variants {
				a, b := t1, t2
				if v.swap {
					a, b = t2, t1
				}
				candidates = append(candidates,
					blendCandidate(a, b, v.strandsA, v.strandsB, arity))
			}
		}
	}
	return newCandidateSet(catalog, arity, threshold, candidates), nil
}

// blendCandidate mixes sa strands of a with sb strands of b.
func blendCandidate(a, b Thread, sa, sb uint8, arity Arity) Candidate {
	c := Candidate{
		Kind:    KindBlend,
		Color:   mixColors(a.Color, b.Color, sa, sb),
		A:       a,
		B:       b,
		strands: [2]uint8{sa, sb},
	}
	if arity >= Arity4 {
		c.Split = &StrandSplit{A: sa, B: sb}
	}
	return c
}

// mixColors returns the per-channel weighted average of a and b, rounded
// half up.
func mixColors(a, b RGB, sa, sb uint8) RGB {
	return RGB{
		R: mixChannel(a.R, b.R, sa, sb),
		G: mixChannel(a.G, b.G, sa, sb),
		B: mixChannel(a.B, b.B, sa, sb),
	}
}

func mixChannel(a, b, sa, sb uint8) uint8 {
	sum := int(a)*int(sa) + int(b)*int(sb)
	n := int(sa) + int(sb)
	// round(sum/n) for non-negative sums
	return uint8((2*sum + n) / (2 * n))
}
