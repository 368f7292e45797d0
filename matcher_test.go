package xstitch

import (
	"errors"
	"math/rand"
	"testing"
)

func randomRGB(rng *rand.Rand) RGB {
	return RGB{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256))}
}

func TestMatcherMatchesLinearScan(t *testing.T) {
	t.Parallel()
	set, err := BuildCandidates(DefaultCatalog(), Arity3)
	if err != nil {
		t.Fatalf("BuildCandidates failed: %v", err)
	}
	methods := []ColorDistanceMethod{
		PerceptualMethod{},
		EuclideanMethod{},
		DeltaEMethod{},
	}
	for _, method := range methods {
		method := method
		t.Run(method.Name(), func(t *testing.T) {
			t.Parallel()
			matcher, err := NewMatcher(set, method)
			if err != nil {
				t.Fatalf("NewMatcher failed: %v", err)
			}
			rng := rand.New(rand.NewSource(5200))
			for i := 0; i < 200; i++ {
				target := randomRGB(rng)
				want, err := FindBest(target, set, method)
				if err != nil {
					t.Fatalf("FindBest failed: %v", err)
				}
				got := matcher.FindBest(target)
				if got.Index != want.Index || got.Distance != want.Distance {
					t.Fatalf("Target %v: matcher chose %d (%s, %v), "+
						"linear scan chose %d (%s, %v)", target,
						got.Index, got.Candidate.Label(), got.Distance,
						want.Index, want.Candidate.Label(), want.Distance)
				}
			}
		})
	}
}

func TestMatcherTieGoesToEarliestCandidate(t *testing.T) {
	t.Parallel()
	catalog := Catalog{
		{Code: "x", Name: "Far", Color: RGB{200, 0, 0}},
		{Code: "y", Name: "Left", Color: RGB{90, 100, 100}},
		{Code: "z", Name: "Right", Color: RGB{110, 100, 100}},
		{Code: "w", Name: "Twin", Color: RGB{90, 100, 100}},
	}
	set, err := BuildCandidates(catalog, ArityNone)
	if err != nil {
		t.Fatalf("BuildCandidates failed: %v", err)
	}
	for _, method := range []ColorDistanceMethod{EuclideanMethod{}, PerceptualMethod{}} {
		matcher, err := NewMatcher(set, method)
		if err != nil {
			t.Fatalf("NewMatcher failed: %v", err)
		}
		got := matcher.FindBest(RGB{100, 100, 100})
		if got.Index != 1 {
			t.Errorf("%s: expected the earliest of the tied candidates, got %s",
				method.Name(), got.Candidate.Label())
		}
	}
}

func TestFindBestIdempotent(t *testing.T) {
	t.Parallel()
	set, err := BuildCandidates(DefaultCatalog(), Arity2)
	if err != nil {
		t.Fatalf("BuildCandidates failed: %v", err)
	}
	matcher, err := NewMatcher(set, DeltaEMethod{})
	if err != nil {
		t.Fatalf("NewMatcher failed: %v", err)
	}
	target := RGB{123, 45, 67}
	first := matcher.FindBest(target)
	for i := 0; i < 3; i++ {
		again := matcher.FindBest(target)
		if again.Index != first.Index || again.Distance != first.Distance {
			t.Fatalf("Repeated query returned %+v, first returned %+v",
				again, first)
		}
	}
}

func TestFindBestExactCatalogColor(t *testing.T) {
	t.Parallel()
	catalog := DefaultCatalog()
	black, ok := catalog.Lookup("310")
	if !ok {
		t.Fatal("DMC 310 missing from the embedded catalog")
	}
	set, err := BuildCandidates(catalog, ArityNone)
	if err != nil {
		t.Fatalf("BuildCandidates failed: %v", err)
	}
	for _, method := range []ColorDistanceMethod{
		PerceptualMethod{}, EuclideanMethod{}, DeltaEMethod{},
	} {
		result, err := FindBest(black.Color, set, method)
		if err != nil {
			t.Fatalf("FindBest failed: %v", err)
		}
		if result.Candidate.IsBlend() || result.Candidate.A.Code != "310" ||
			result.Distance != 0 {
			t.Errorf("%s: expected pure 310 at distance 0, got %s at %v",
				method.Name(), result.Candidate.Label(), result.Distance)
		}
	}
}

func TestMatcherRank(t *testing.T) {
	t.Parallel()
	set, err := BuildCandidates(threeThreadCatalog(), Arity2)
	if err != nil {
		t.Fatalf("BuildCandidates failed: %v", err)
	}
	matcher, err := NewMatcher(set, EuclideanMethod{})
	if err != nil {
		t.Fatalf("NewMatcher failed: %v", err)
	}

	ranked := matcher.Rank(RGB{5, 5, 5}, 3)
	if len(ranked) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(ranked))
	}
	// (0,0,0) and (10,10,10) are equally far; construction order decides
	wantIdx := []int{1, 0, 2}
	for i, r := range ranked {
		if r.Index != wantIdx[i] {
			t.Errorf("Rank %d: expected candidate %d, got %d (%s)",
				i, wantIdx[i], r.Index, r.Candidate.Label())
		}
	}
	if best := matcher.FindBest(RGB{5, 5, 5}); best.Index != ranked[0].Index {
		t.Errorf("Rank and FindBest disagree: %d vs %d",
			ranked[0].Index, best.Index)
	}
	if all := matcher.Rank(RGB{5, 5, 5}, 0); len(all) != set.Len() {
		t.Errorf("Expected every candidate for k=0, got %d", len(all))
	}
}

func TestMatcherRejectsBadConfiguration(t *testing.T) {
	t.Parallel()
	if _, err := NewMatcher(nil, EuclideanMethod{}); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration for a nil set, got %v", err)
	}
	set, err := BuildCandidates(threeThreadCatalog(), ArityNone)
	if err != nil {
		t.Fatalf("BuildCandidates failed: %v", err)
	}
	if _, err := NewMatcher(set, nil); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration for a nil method, got %v", err)
	}
	if _, err := FindBest(RGB{}, nil, EuclideanMethod{}); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration from FindBest, got %v", err)
	}
}
