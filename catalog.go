package xstitch

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

//go:embed colordata/dmc.json
var f embed.FS

// DefaultCatalogName is the name of the embedded DMC catalog.
const DefaultCatalogName = "dmc"

// Thread is a single reference embroidery floss color.
type Thread struct {
	Code  string
	Name  string
	Color RGB
}

// Catalog is an ordered list of base threads. The order is significant:
// it fixes the construction order of candidate sets and therefore the
// tie-break between equally close candidates.
type Catalog []Thread

type threadEntry struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog Catalog
)

// DefaultCatalog returns the embedded DMC catalog. It is parsed once per
// process and shared; callers must not modify it.
func DefaultCatalog() Catalog {
	defaultOnce.Do(func() {
		c, err := LoadCatalog(DefaultCatalogName)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is corrupt: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadCatalog reads a thread catalog in JSON form. The name is first
// looked up among the embedded catalogs (colordata/<name>.json); if that
// fails it is treated as a filesystem path.
func LoadCatalog(name string) (Catalog, error) {
	template := "colordata/%s.json"
	data, vfsErr := f.ReadFile(fmt.Sprintf(template, name))
	if vfsErr != nil {
		var fsErr error
		data, fsErr = os.ReadFile(name)
		if fsErr != nil {
			return nil, fmt.Errorf("error reading catalog: %w", fsErr)
		}
	}
	return ReadCatalogJSON(bytes.NewReader(data))
}

// ReadCatalogJSON decodes a catalog from a JSON array of
// {"code", "name", "color": "#rrggbb"} objects and validates it.
func ReadCatalogJSON(r io.Reader) (Catalog, error) {
	var entries []threadEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("error unmarshalling catalog: %w", err)
	}
	catalog := make(Catalog, 0, len(entries))
	for i, entry := range entries {
		color, err := ParseHex(entry.Color)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): %w",
				i, entry.Code, err)
		}
		catalog = append(catalog, Thread{
			Code:  strings.TrimSpace(entry.Code),
			Name:  strings.TrimSpace(entry.Name),
			Color: color,
		})
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// WriteJSON encodes the catalog in the form read by ReadCatalogJSON.
func (c Catalog) WriteJSON(w io.Writer) error {
	entries := make([]threadEntry, len(c))
	for i, t := range c {
		entries[i] = threadEntry{Code: t.Code, Name: t.Name,
			Color: t.Color.Hex()}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// Validate checks that the catalog is non-empty and that every code is
// present and unique.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: empty thread catalog", ErrConfiguration)
	}
	seen := make(map[string]int, len(c))
	for i, t := range c {
		key := normalizeCode(t.Code)
		if key == "" {
			return fmt.Errorf("%w: catalog entry %d has no code",
				ErrConfiguration, i)
		}
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate thread code %q "+
				"(entries %d and %d)", ErrConfiguration, t.Code, prev, i)
		}
		seen[key] = i
	}
	return nil
}

// Lookup finds a thread by code. Matching ignores case, surrounding
// space and Unicode width variants, so "blanc", "BLANC" and "Ｂlanc"
// all find DMC Blanc.
func (c Catalog) Lookup(code string) (Thread, bool) {
	key := normalizeCode(code)
	if key == "" {
		return Thread{}, false
	}
	for _, t := range c {
		if normalizeCode(t.Code) == key {
			return t, true
		}
	}
	return Thread{}, false
}

// normalizeCode folds a thread code for comparison. A Caser is stateful,
// so a new one is made per call.
func normalizeCode(code string) string {
	return cases.Fold().String(strings.TrimSpace(norm.NFKC.String(code)))
}
