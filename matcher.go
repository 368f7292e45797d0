package xstitch

import (
	"fmt"
	"sort"
)

// MatchResult is the outcome of one nearest-candidate query.
type MatchResult struct {
	Target    RGB
	Candidate Candidate
	Index     int
	Distance  float64
}

// FindBest returns the candidate of set closest to target under method.
// Ties go to the candidate built first. It scans the whole set; use a
// Matcher to answer many queries against the same set.
func FindBest(
	target RGB,
	set *CandidateSet,
	method ColorDistanceMethod,
) (MatchResult, error) {
	if set.Len() == 0 {
		return MatchResult{}, fmt.Errorf("%w: empty candidate set",
			ErrConfiguration)
	}
	if method == nil {
		return MatchResult{}, fmt.Errorf("%w: no color method",
			ErrConfiguration)
	}
	best := kdBest{index: -1}
	for idx, c := range set.candidates {
		// Strictly smaller only, so the earliest candidate keeps a tie
		if dist := method.Distance(target, c.Color); best.index < 0 ||
			dist < best.distance {
			best = kdBest{index: idx, distance: dist}
		}
	}
	return set.result(target, best), nil
}

func (s *CandidateSet) result(target RGB, best kdBest) MatchResult {
	return MatchResult{
		Target:    target,
		Candidate: s.candidates[best.index],
		Index:     best.index,
		Distance:  best.distance,
	}
}

// Matcher answers nearest-candidate queries against one candidate set and
// method. It precomputes the Lab value of every candidate for Lab based
// methods and a KD-tree for axis-weighted methods. A Matcher holds no
// per-query state and is safe for concurrent use.
type Matcher struct {
	set    *CandidateSet
	method ColorDistanceMethod
	labs   []Lab
	tree   *colorNode
}

// NewMatcher prepares a Matcher for set and method.
func NewMatcher(set *CandidateSet, method ColorDistanceMethod) (*Matcher, error) {
	if set.Len() == 0 {
		return nil, fmt.Errorf("%w: empty candidate set", ErrConfiguration)
	}
	if method == nil {
		return nil, fmt.Errorf("%w: no color method", ErrConfiguration)
	}
	m := &Matcher{set: set, method: method}
	switch method.(type) {
	case labMethod:
		m.labs = make([]Lab, set.Len())
		for idx, c := range set.candidates {
			m.labs[idx] = RGBToLab(c.Color)
		}
	case axisWeightedMethod:
		entries := make([]kdEntry, set.Len())
		for idx, c := range set.candidates {
			entries[idx] = kdEntry{color: c.Color, index: idx}
		}
		m.tree = buildKDTree(entries)
	}
	return m, nil
}

// Set returns the candidate set the matcher searches.
func (m *Matcher) Set() *CandidateSet { return m.set }

// Method returns the matcher's distance method.
func (m *Matcher) Method() ColorDistanceMethod { return m.method }

// FindBest returns the candidate closest to target. Ties go to the
// candidate built first.
func (m *Matcher) FindBest(target RGB) MatchResult {
	if aw, ok := m.method.(axisWeightedMethod); ok && m.tree != nil {
		return m.set.result(target,
			m.tree.nearestNeighbor(target, aw, kdBest{index: -1}))
	}
	distances := m.distances(target)
	best := kdBest{index: 0, distance: distances[0]}
	for idx, dist := range distances[1:] {
		if dist < best.distance {
			best = kdBest{index: idx + 1, distance: dist}
		}
	}
	return m.set.result(target, best)
}

// Rank returns the k candidates closest to target, closest first. Equal
// distances keep construction order. k <= 0 or k > Len returns every
// candidate.
func (m *Matcher) Rank(target RGB, k int) []MatchResult {
	distances := m.distances(target)
	order := make([]int, len(distances))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return distances[order[i]] < distances[order[j]]
	})
	if k <= 0 || k > len(order) {
		k = len(order)
	}
	results := make([]MatchResult, k)
	for i, idx := range order[:k] {
		results[i] = m.set.result(target,
			kdBest{index: idx, distance: distances[idx]})
	}
	return results
}

// distances computes the distance from target to every candidate. The
// slice is local to the query.
func (m *Matcher) distances(target RGB) []float64 {
	distances := make([]float64, m.set.Len())
	if lm, ok := m.method.(labMethod); ok && m.labs != nil {
		targetLab := RGBToLab(target)
		for idx, lab := range m.labs {
			distances[idx] = lm.labDistance(targetLab, lab)
		}
		return distances
	}
	for idx, c := range m.set.candidates {
		distances[idx] = m.method.Distance(target, c.Color)
	}
	return distances
}
