// Package catalog provides the immutable career reference catalog.
// A Catalog is built once and is safe for any number of concurrent readers.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/career-compass/internal/types"
)

//go:embed careers.json
var embeddedCareers []byte

// LookupError reports a career reference that does not resolve to a catalog entry.
type LookupError struct {
	Key string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("career %q not found in catalog", e.Key)
}

// Catalog is a read-only, ordered set of careers.
type Catalog struct {
	careers []types.Career
	byID    map[string]int
	byName  map[string]int // normalized title or alias
	sectors []types.Sector
}

// New builds a catalog from careers. Every record is validated and IDs
// must be unique. The slice is copied; iteration order is preserved.
func New(careers []types.Career) (*Catalog, error) {
	c := &Catalog{
		careers: make([]types.Career, 0, len(careers)),
		byID:    make(map[string]int, len(careers)),
		byName:  make(map[string]int, len(careers)*2),
	}
	seenSector := make(map[types.Sector]bool)

	for i := range careers {
		rec := cloneCareer(careers[i])
		if err := types.ValidateCareer(&rec); err != nil {
			return nil, fmt.Errorf("invalid career %q at index %d: %w", rec.ID, i, err)
		}
		if _, dup := c.byID[rec.ID]; dup {
			return nil, fmt.Errorf("duplicate career id %q", rec.ID)
		}

		idx := len(c.careers)
		c.careers = append(c.careers, rec)
		c.byID[rec.ID] = idx
		for _, name := range append([]string{rec.Title}, rec.Aliases...) {
			key := normalizeKey(name)
			if _, taken := c.byName[key]; !taken {
				c.byName[key] = idx
			}
		}
		if !seenSector[rec.Sector] {
			seenSector[rec.Sector] = true
			c.sectors = append(c.sectors, rec.Sector)
		}
	}
	return c, nil
}

// Parse builds a catalog from a JSON array of careers.
func Parse(data []byte) (*Catalog, error) {
	var careers []types.Career
	if err := json.Unmarshal(data, &careers); err != nil {
		return nil, fmt.Errorf("failed to parse career catalog: %w", err)
	}
	return New(careers)
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(embeddedCareers)
}

// LoadFile reads a catalog from a JSON file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return Parse(data)
}

// Len returns the number of careers.
func (c *Catalog) Len() int {
	return len(c.careers)
}

// All returns every career in catalog order. The returned slice is a copy.
func (c *Catalog) All() []types.Career {
	out := make([]types.Career, len(c.careers))
	for i := range c.careers {
		out[i] = cloneCareer(c.careers[i])
	}
	return out
}

// At returns the career at catalog position i.
func (c *Catalog) At(i int) types.Career {
	return cloneCareer(c.careers[i])
}

// Lookup resolves an id, title, or alias, ignoring case and separators.
func (c *Catalog) Lookup(key string) (types.Career, error) {
	if idx, ok := c.byID[strings.TrimSpace(key)]; ok {
		return cloneCareer(c.careers[idx]), nil
	}
	norm := normalizeKey(key)
	if idx, ok := c.byID[strings.ReplaceAll(norm, " ", "-")]; ok {
		return cloneCareer(c.careers[idx]), nil
	}
	if idx, ok := c.byName[norm]; ok {
		return cloneCareer(c.careers[idx]), nil
	}
	return types.Career{}, &LookupError{Key: key}
}

// Index returns the catalog position of id.
func (c *Catalog) Index(id string) (int, bool) {
	idx, ok := c.byID[id]
	return idx, ok
}

// Sectors returns the distinct sectors present, in order of first appearance.
func (c *Catalog) Sectors() []types.Sector {
	return append([]types.Sector(nil), c.sectors...)
}

// normalizeKey lowercases s and folds hyphens, underscores and runs of
// whitespace into single spaces.
func normalizeKey(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func cloneCareer(c types.Career) types.Career {
	c.Certifications = append([]string(nil), c.Certifications...)
	c.Keywords = append([]string(nil), c.Keywords...)
	c.Traits = append([]string(nil), c.Traits...)
	c.Aliases = append([]string(nil), c.Aliases...)
	c.WorkEnvironments = append([]string(nil), c.WorkEnvironments...)
	return c
}
