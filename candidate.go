package xstitch

import "strconv"

// CandidateKind tells a pure thread apart from a blend of two threads.
type CandidateKind uint8

const (
	KindPure CandidateKind = iota
	KindBlend
)

func (k CandidateKind) String() string {
	if k == KindBlend {
		return "blend"
	}
	return "pure"
}

// StrandSplit records how many strands of each component a blend uses.
// It is only set for 4, 5 and 6 strand blends; 2 and 3 strand blends
// have an implicit 1+1 and 1+2 split.
type StrandSplit struct {
	A, B uint8
}

// Candidate is a matchable color: either a single thread (KindPure) or a
// blend of two threads (KindBlend).
//
// For a pure candidate A is the thread and B is the zero Thread. For a
// blend, A is the first listed component and B the second; Color is the
// rounded weighted average of their colors at the blend's strand ratio.
type Candidate struct {
	Kind  CandidateKind
	Color RGB
	A     Thread
	B     Thread
	Split *StrandSplit

	strands [2]uint8
}

func pureCandidate(t Thread) Candidate {
	return Candidate{
		Kind:    KindPure,
		Color:   t.Color,
		A:       t,
		strands: [2]uint8{1, 0},
	}
}

// IsBlend reports whether the candidate mixes two threads.
func (c Candidate) IsBlend() bool {
	return c.Kind == KindBlend
}

// Codes returns the thread code label, "310" for a pure thread or
// "3371, 938" for a blend. Blend codes always follow component order, A
// first, so a 1+3 blend built from the second thread of a pair lists
// that thread first. The GIMP plug-in printed the pair in catalog order
// for those variants; legends from this package differ there on purpose.
func (c Candidate) Codes() string {
	if c.Kind == KindBlend {
		return c.A.Code + ", " + c.B.Code
	}
	return c.A.Code
}

// Names returns the thread name label in the same shape as Codes.
func (c Candidate) Names() string {
	if c.Kind == KindBlend {
		return c.A.Name + ", " + c.B.Name
	}
	return c.A.Name
}

// Strands returns the strand ratio of the components: (1, 0) for a pure
// thread, (1, 1) for a 2-strand blend, (1, 2) for a 3-strand blend and
// the explicit split otherwise.
func (c Candidate) Strands() (a, b int) {
	return int(c.strands[0]), int(c.strands[1])
}

// Label returns the legend text for the candidate: codes, names and,
// when the blend has an explicit split, the strand counts.
func (c Candidate) Label() string {
	label := c.Codes() + " " + c.Names()
	if c.Split != nil {
		label += " [" + strconv.Itoa(int(c.Split.A)) + "+" +
			strconv.Itoa(int(c.Split.B)) + "]"
	}
	return label
}
