package xstitch

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func threeThreadCatalog() Catalog {
	return Catalog{
		{Code: "A", Name: "Ink", Color: RGB{0, 0, 0}},
		{Code: "B", Name: "Soot", Color: RGB{10, 10, 10}},
		{Code: "C", Name: "Chalk", Color: RGB{250, 250, 250}},
	}
}

func twoThreadCatalog() Catalog {
	return Catalog{
		{Code: "310", Name: "Black", Color: RGB{0, 0, 0}},
		{Code: "3799", Name: "Pewter Gray", Color: RGB{48, 36, 40}},
	}
}

func labels(set *CandidateSet) []string {
	out := make([]string, set.Len())
	for i, c := range set.All() {
		out[i] = c.Label()
	}
	return out
}

func TestBuildCandidatesArityNone(t *testing.T) {
	t.Parallel()
	catalog := DefaultCatalog()
	set, err := BuildCandidates(catalog, ArityNone)
	if err != nil {
		t.Fatalf("BuildCandidates failed: %v", err)
	}
	if set.Len() != len(catalog) {
		t.Fatalf("Expected %d candidates, got %d", len(catalog), set.Len())
	}
	for i, c := range set.All() {
		if c.IsBlend() || c.A != catalog[i] || c.Color != catalog[i].Color {
			t.Fatalf("Candidate %d should be pure thread %s, got %+v",
				i, catalog[i].Code, c)
		}
	}
	if pure, blends := set.Counts(); pure != len(catalog) || blends != 0 {
		t.Errorf("Counts() = %d, %d", pure, blends)
	}
}

func TestBuildCandidatesThresholdProperty(t *testing.T) {
	t.Parallel()
	for _, threshold := range []int{0, 20, BlendThreshold} {
		set, err := BuildCandidatesThreshold(DefaultCatalog(), Arity2, threshold)
		if err != nil {
			t.Fatalf("BuildCandidatesThreshold failed: %v", err)
		}
		_, blends := set.Counts()
		if threshold == BlendThreshold && blends == 0 {
			t.Fatal("Expected some blends at the default threshold")
		}
		for _, c := range set.All() {
			if !c.IsBlend() {
				continue
			}
			if d := c.A.Color.maxChannelDiff(c.B.Color); d > threshold {
				t.Fatalf("Blend %s has channel difference %d > %d",
					c.Label(), d, threshold)
			}
		}
	}
}

func TestBuildCandidatesThreeThreadScenario(t *testing.T) {
	t.Parallel()
	set, err := BuildCandidates(threeThreadCatalog(), Arity2)
	if err != nil {
		t.Fatalf("BuildCandidates failed: %v", err)
	}
	want := []string{"A Ink", "A, B Ink, Soot", "B Soot", "C Chalk"}
	if diff := cmp.Diff(want, labels(set)); diff != "" {
		t.Fatalf("Candidate order mismatch (-want +got):\n%s", diff)
	}
	if got := set.At(1).Color; got != (RGB{5, 5, 5}) {
		t.Errorf("Expected blend color (5,5,5), got %v", got)
	}

	result, err := FindBest(RGB{5, 5, 5}, set, EuclideanMethod{})
	if err != nil {
		t.Fatalf("FindBest failed: %v", err)
	}
	if !result.Candidate.IsBlend() || result.Index != 1 || result.Distance != 0 {
		t.Errorf("Expected blend A, B at distance 0, got %s at %v",
			result.Candidate.Label(), result.Distance)
	}
}

func TestBlendLabelsFollowComponentOrder(t *testing.T) {
	t.Parallel()
	for _, arity := range []Arity{Arity4, Arity5, Arity6} {
		set, err := BuildCandidates(DefaultCatalog()[:60], arity)
		if err != nil {
			t.Fatalf("BuildCandidates(%v) failed: %v", arity, err)
		}
		for _, c := range set.All() {
			if !c.IsBlend() {
				continue
			}
			if want := c.A.Code + ", " + c.B.Code; c.Codes() != want {
				t.Fatalf("Codes() = %q, want %q", c.Codes(), want)
			}
			a, b := c.Strands()
			if c.Split == nil || int(c.Split.A) != a || int(c.Split.B) != b {
				t.Fatalf("%s: split %v disagrees with strands %d+%d",
					c.Label(), c.Split, a, b)
			}
		}
	}
}

func TestBuildCandidatesVariantOrder(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		arity Arity
		want  []string
	}{
		{Arity2, []string{
			"310 Black",
			"310, 3799 Black, Pewter Gray",
			"3799 Pewter Gray",
		}},
		{Arity3, []string{
			"310 Black",
			"310, 3799 Black, Pewter Gray",
			"3799, 310 Pewter Gray, Black",
			"3799 Pewter Gray",
		}},
		{Arity4, []string{
			"310 Black",
			"310, 3799 Black, Pewter Gray [2+2]",
			"310, 3799 Black, Pewter Gray [1+3]",
			"3799, 310 Pewter Gray, Black [1+3]",
			"3799 Pewter Gray",
		}},
		{Arity5, []string{
			"310 Black",
			"310, 3799 Black, Pewter Gray [1+4]",
			"3799, 310 Pewter Gray, Black [1+4]",
			"310, 3799 Black, Pewter Gray [2+3]",
			"3799, 310 Pewter Gray, Black [2+3]",
			"3799 Pewter Gray",
		}},
		{Arity6, []string{
			"310 Black",
			"310, 3799 Black, Pewter Gray [1+5]",
			"3799, 310 Pewter Gray, Black [1+5]",
			"310, 3799 Black, Pewter Gray [2+4]",
			"3799, 310 Pewter Gray, Black [2+4]",
			"310, 3799 Black, Pewter Gray [3+3]",
			"3799 Pewter Gray",
		}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.arity.String(), func(t *testing.T) {
			t.Parallel()
			set, err := BuildCandidates(twoThreadCatalog(), tc.arity)
			if err != nil {
				t.Fatalf("BuildCandidates failed: %v", err)
			}
			if diff := cmp.Diff(tc.want, labels(set)); diff != "" {
				t.Errorf("Labels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBlendColorsAndStrands(t *testing.T) {
	t.Parallel()
	set, err := BuildCandidates(twoThreadCatalog(), Arity3)
	if err != nil {
		t.Fatalf("BuildCandidates failed: %v", err)
	}
	first, second := set.At(1), set.At(2)
	// one strand of 310, two of 3799
	if want := (RGB{32, 24, 27}); first.Color != want {
		t.Errorf("Expected %v, got %v", want, first.Color)
	}
	if want := (RGB{16, 12, 13}); second.Color != want {
		t.Errorf("Expected %v, got %v", want, second.Color)
	}
	if a, b := first.Strands(); a != 1 || b != 2 {
		t.Errorf("Expected 1+2 strands, got %d+%d", a, b)
	}
	if first.Split != nil {
		t.Error("3-strand blends should not carry an explicit split")
	}
	if a, b := set.At(0).Strands(); a != 1 || b != 0 {
		t.Errorf("Expected pure strands 1+0, got %d+%d", a, b)
	}
}

func TestBlendRatioMonotonic(t *testing.T) {
	t.Parallel()
	catalog := Catalog{
		{Code: "1", Name: "Dark", Color: RGB{0, 0, 0}},
		{Code: "2", Name: "Light", Color: RGB{50, 50, 50}},
	}
	even, err := BuildCandidates(catalog, Arity2)
	if err != nil {
		t.Fatalf("BuildCandidates failed: %v", err)
	}
	five, err := BuildCandidates(catalog, Arity5)
	if err != nil {
		t.Fatalf("BuildCandidates failed: %v", err)
	}
	half := even.At(1)
	oneFour := five.At(1)
	if a, b := oneFour.Strands(); a != 1 || b != 4 {
		t.Fatalf("Expected a 1+4 blend, got %d+%d", a, b)
	}
	pure := catalog[1].Color

	if !(half.Color.R < oneFour.Color.R && oneFour.Color.R < pure.R) {
		t.Errorf("Expected %v < %v < %v", half.Color, oneFour.Color, pure)
	}
	if EuclideanSqDistance(oneFour.Color, pure) >=
		EuclideanSqDistance(half.Color, pure) {
		t.Errorf("1+4 blend %v should be closer to %v than 1+1 blend %v",
			oneFour.Color, pure, half.Color)
	}
}

func TestBuildCandidatesRejectsBadConfiguration(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name      string
		catalog   Catalog
		arity     Arity
		threshold int
	}{
		{"empty catalog", Catalog{}, Arity2, BlendThreshold},
		{"unknown arity", twoThreadCatalog(), Arity(7), BlendThreshold},
		{"negative threshold", twoThreadCatalog(), Arity2, -1},
		{"threshold too large", twoThreadCatalog(), Arity2, 256},
		{"duplicate codes", Catalog{
			{Code: "310", Color: RGB{}},
			{Code: " 310", Color: RGB{1, 1, 1}},
		}, ArityNone, BlendThreshold},
	}
	for _, tc := range testCases {
		_, err := BuildCandidatesThreshold(tc.catalog, tc.arity, tc.threshold)
		if !errors.Is(err, ErrConfiguration) {
			t.Errorf("%s: expected ErrConfiguration, got %v", tc.name, err)
		}
	}
}

func TestParseArity(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		input string
		want  Arity
	}{
		{"none", ArityNone},
		{"", ArityNone},
		{"2", Arity2},
		{"3-strand", Arity3},
		{" 6 ", Arity6},
	}
	for _, tc := range testCases {
		got, err := ParseArity(tc.input)
		if err != nil || got != tc.want {
			t.Errorf("ParseArity(%q) = %v, %v; want %v", tc.input, got, err, tc.want)
		}
	}
	if _, err := ParseArity("7"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration for 7 strands, got %v", err)
	}
}

func TestCandidateSetLookup(t *testing.T) {
	t.Parallel()
	catalog := Catalog{
		{Code: "a", Name: "First", Color: RGB{1, 1, 1}},
		{Code: "b", Name: "Second", Color: RGB{1, 1, 1}},
	}
	set, err := BuildCandidates(catalog, ArityNone)
	if err != nil {
		t.Fatalf("BuildCandidates failed: %v", err)
	}
	idx, ok := set.IndexOf(RGB{1, 1, 1})
	if !ok || idx != 0 {
		t.Errorf("Expected the first candidate of a shared color, got %d, %v", idx, ok)
	}
	if _, ok := set.Lookup(RGB{2, 2, 2}); ok {
		t.Error("Expected no candidate for an unused color")
	}
}
