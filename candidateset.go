package xstitch

// CandidateSet is the ordered list of candidates built for one catalog
// and arity. It is immutable once built and safe for concurrent use.
type CandidateSet struct {
	catalog    Catalog
	arity      Arity
	threshold  int
	candidates []Candidate
	colorTable map[RGB]int
}

func newCandidateSet(
	catalog Catalog,
	arity Arity,
	threshold int,
	candidates []Candidate,
) *CandidateSet {
	colorTable := make(map[RGB]int, len(candidates))
	for idx, c := range candidates {
		// First candidate with a color wins, like the match tie-break.
		if _, exists := colorTable[c.Color]; !exists {
			colorTable[c.Color] = idx
		}
	}
	return &CandidateSet{
		catalog:    catalog,
		arity:      arity,
		threshold:  threshold,
		candidates: candidates,
		colorTable: colorTable,
	}
}

// Len returns the number of candidates.
func (s *CandidateSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.candidates)
}

// At returns the candidate at index i in construction order.
func (s *CandidateSet) At(i int) Candidate {
	return s.candidates[i]
}

// All returns a copy of the candidates in construction order.
func (s *CandidateSet) All() []Candidate {
	return append([]Candidate(nil), s.candidates...)
}

// Arity returns the arity the set was built with.
func (s *CandidateSet) Arity() Arity { return s.arity }

// Threshold returns the blend threshold the set was built with.
func (s *CandidateSet) Threshold() int { return s.threshold }

// Catalog returns the base catalog of the set.
func (s *CandidateSet) Catalog() Catalog { return s.catalog }

// IndexOf returns the index of the first candidate, in construction
// order, whose color equals c.
func (s *CandidateSet) IndexOf(c RGB) (int, bool) {
	idx, ok := s.colorTable[c]
	return idx, ok
}

// Lookup returns the first candidate whose color equals c.
func (s *CandidateSet) Lookup(c RGB) (Candidate, bool) {
	idx, ok := s.colorTable[c]
	if !ok {
		return Candidate{}, false
	}
	return s.candidates[idx], true
}

// Counts returns the number of pure and blended candidates.
func (s *CandidateSet) Counts() (pure, blends int) {
	for _, c := range s.candidates {
		if c.Kind == KindBlend {
			blends++
		} else {
			pure++
		}
	}
	return pure, blends
}
