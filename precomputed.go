package xstitch

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"sort"
	"strings"
)

// CandidateTables is the on-disk form of precomputed candidate sets: one
// catalog, one blend threshold and a compact table per arity, stored as a
// gzip'd gob stream.
type CandidateTables struct {
	Catalog   []CompactThread
	Threshold int
	Tables    map[Arity]CompactCandidateTable
}

// CompactThread is a catalog thread with its color packed into a uint32.
type CompactThread struct {
	Code  string
	Name  string
	Color uint32
}

// CompactCandidateTable holds the candidates of one arity in
// construction order.
type CompactCandidateTable struct {
	Entries []CompactCandidate
}

// CompactCandidate is a candidate stored by catalog index. B is ignored
// for pure candidates.
type CompactCandidate struct {
	Blend    bool
	A, B     uint32
	StrandsA uint8
	StrandsB uint8
	HasSplit bool
	Color    uint32
}

// CompactCandidates builds the compact tables of catalog for every arity
// given, using threshold for blends.
func CompactCandidates(
	catalog Catalog,
	threshold int,
	arities ...Arity,
) (CandidateTables, error) {
	if err := catalog.Validate(); err != nil {
		return CandidateTables{}, err
	}
	index := make(map[string]uint32, len(catalog))
	tables := CandidateTables{
		Catalog:   make([]CompactThread, len(catalog)),
		Threshold: threshold,
		Tables:    make(map[Arity]CompactCandidateTable, len(arities)),
	}
	for i, t := range catalog {
		index[t.Code] = uint32(i)
		tables.Catalog[i] = CompactThread{
			Code:  t.Code,
			Name:  t.Name,
			Color: t.Color.toUint32(),
		}
	}
	for _, arity := range arities {
		set, err := BuildCandidatesThreshold(catalog, arity, threshold)
		if err != nil {
			return CandidateTables{}, err
		}
		entries := make([]CompactCandidate, set.Len())
		for i, c := range set.candidates {
			entries[i] = CompactCandidate{
				Blend:    c.IsBlend(),
				A:        index[c.A.Code],
				StrandsA: c.strands[0],
				StrandsB: c.strands[1],
				HasSplit: c.Split != nil,
				Color:    c.Color.toUint32(),
			}
			if c.IsBlend() {
				entries[i].B = index[c.B.Code]
			}
		}
		tables.Tables[arity] = CompactCandidateTable{Entries: entries}
	}
	return tables, nil
}

// WriteCandidateTables computes the candidate sets of catalog for every
// arity given and writes them to w.
func WriteCandidateTables(
	w io.Writer,
	catalog Catalog,
	threshold int,
	arities ...Arity,
) error {
	tables, err := CompactCandidates(catalog, threshold, arities...)
	if err != nil {
		return err
	}
	gzw := gzip.NewWriter(w)
	if err := gob.NewEncoder(gzw).Encode(tables); err != nil {
		return fmt.Errorf("failed to encode candidate tables: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return nil
}

// ReadCandidateTable reads tables written by WriteCandidateTables and
// restores the candidate set of arity.
func ReadCandidateTable(r io.Reader, arity Arity) (*CandidateSet, error) {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzr.Close()

	var tables CandidateTables
	if err := gob.NewDecoder(gzr).Decode(&tables); err != nil {
		return nil, fmt.Errorf("failed to decode candidate tables: %w", err)
	}
	return tables.Restore(arity)
}

// Arities returns the arities present in the tables, in order.
func (ct CandidateTables) Arities() []Arity {
	arities := make([]Arity, 0, len(ct.Tables))
	for arity := range ct.Tables {
		arities = append(arities, arity)
	}
	sort.Slice(arities, func(i, j int) bool { return arities[i] < arities[j] })
	return arities
}

// Restore rebuilds the candidate set of arity from the compact tables.
func (ct CandidateTables) Restore(arity Arity) (*CandidateSet, error) {
	table, ok := ct.Tables[arity]
	if !ok {
		names := make([]string, 0, len(ct.Tables))
		for _, a := range ct.Arities() {
			names = append(names, a.String())
		}
		return nil, fmt.Errorf("%w: arity %s not in candidate tables "+
			"(available: %s)", ErrConfiguration, arity,
			strings.Join(names, ", "))
	}

	catalog := make(Catalog, len(ct.Catalog))
	for i, t := range ct.Catalog {
		catalog[i] = Thread{
			Code:  t.Code,
			Name:  t.Name,
			Color: rgbFromUint32(t.Color),
		}
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, len(table.Entries))
	for i, e := range table.Entries {
		if int(e.A) >= len(catalog) || (e.Blend && int(e.B) >= len(catalog)) {
			return nil, fmt.Errorf("%w: candidate %d refers to a thread "+
				"outside the catalog", ErrConfiguration, i)
		}
		c := Candidate{
			Color:   rgbFromUint32(e.Color),
			A:       catalog[e.A],
			strands: [2]uint8{e.StrandsA, e.StrandsB},
		}
		if e.Blend {
			c.Kind = KindBlend
			c.B = catalog[e.B]
		}
		if e.HasSplit {
			c.Split = &StrandSplit{A: e.StrandsA, B: e.StrandsB}
		}
		candidates[i] = c
	}
	return newCandidateSet(catalog, arity, ct.Threshold, candidates), nil
}
