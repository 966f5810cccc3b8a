// Package catalog provides the known car brands and their model types for
// the single-entry form.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Brand is one brand and its known model types.
type Brand struct {
	Name  string   `yaml:"name" json:"name"`
	Types []string `yaml:"types" json:"types"`
}

type file struct {
	Brands []Brand `yaml:"brands"`
}

// Catalog is an immutable brand to types lookup.
type Catalog struct {
	brands []string
	types  map[string][]string
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse builds a Catalog from YAML. Brand names must be unique.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog.Parse: %w", err)
	}

	c := &Catalog{types: make(map[string][]string, len(f.Brands))}
	for _, b := range f.Brands {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			return nil, fmt.Errorf("catalog.Parse: brand with empty name")
		}
		if _, dup := c.types[name]; dup {
			return nil, fmt.Errorf("catalog.Parse: duplicate brand %q", name)
		}
		c.brands = append(c.brands, name)
		c.types[name] = append([]string(nil), b.Types...)
	}
	sort.Strings(c.brands)
	return c, nil
}

// Brands returns all brand names, sorted.
func (c *Catalog) Brands() []string {
	return append([]string(nil), c.brands...)
}

// Types returns the model types for brand in catalog order, or nil if the
// brand is unknown.
func (c *Catalog) Types(brand string) []string {
	t, ok := c.types[brand]
	if !ok {
		return nil
	}
	return append([]string(nil), t...)
}

// AllTypes returns every distinct model type across brands, sorted.
func (c *Catalog) AllTypes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, types := range c.types {
		for _, t := range types {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out
}
