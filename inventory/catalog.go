// Package inventory provides the read-only vehicle dataset backing the
// browsing screens. Real deployments point the kiosk at the dealership's
// exported catalog file; the embedded default keeps the journey navigable
// out of the box.
package inventory

import (
	_ "embed"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	kerrors "github.com/motorlane/kiosk/errors"
)

//go:embed catalog.yml
var defaultCatalog []byte

// Vehicle is one unit on the lot.
type Vehicle struct {
	Stock     string `yaml:"stock" json:"stock"`
	Make      string `yaml:"make" json:"make"`
	Model     string `yaml:"model" json:"model"`
	Trim      string `yaml:"trim,omitempty" json:"trim,omitempty"`
	Year      int    `yaml:"year" json:"year"`
	BodyStyle string `yaml:"body_style" json:"bodyStyle"`
	Price     int    `yaml:"price" json:"price"`
	Mileage   int    `yaml:"mileage" json:"mileage"`
}

// Catalog is an immutable set of vehicles.
type Catalog struct {
	vehicles []Vehicle
}

// Filter narrows a catalog query. Zero fields match everything.
type Filter struct {
	BodyStyle string
	MaxPrice  int
	MinYear   int
	Query     string // matched against make/model, case-insensitive
}

type catalogFile struct {
	Vehicles []Vehicle `yaml:"vehicles"`
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kerrors.CatalogInvalid(path, err)
	}
	return parse(path, data)
}

// Default returns the embedded demo catalog.
func Default() *Catalog {
	c, err := parse("embedded", defaultCatalog)
	if err != nil {
		// The embedded file ships with the binary; failing to parse it is
		// a build defect, not a runtime condition.
		panic(err)
	}
	return c
}

func parse(path string, data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, kerrors.CatalogInvalid(path, err)
	}
	vehicles := file.Vehicles
	sort.Slice(vehicles, func(i, j int) bool {
		return vehicles[i].Price < vehicles[j].Price
	})
	return &Catalog{vehicles: vehicles}, nil
}

// All returns every vehicle, cheapest first.
func (c *Catalog) All() []Vehicle {
	out := make([]Vehicle, len(c.vehicles))
	copy(out, c.vehicles)
	return out
}

// Len returns the catalog size.
func (c *Catalog) Len() int {
	return len(c.vehicles)
}

// Search returns vehicles matching the filter, cheapest first.
func (c *Catalog) Search(f Filter) []Vehicle {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	var out []Vehicle
	for _, v := range c.vehicles {
		if f.BodyStyle != "" && !strings.EqualFold(v.BodyStyle, f.BodyStyle) {
			continue
		}
		if f.MaxPrice > 0 && v.Price > f.MaxPrice {
			continue
		}
		if f.MinYear > 0 && v.Year < f.MinYear {
			continue
		}
		if query != "" {
			name := strings.ToLower(v.Make + " " + v.Model + " " + v.Trim)
			if !strings.Contains(name, query) {
				continue
			}
		}
		out = append(out, v)
	}
	return out
}

// ByStock finds one vehicle by stock number.
func (c *Catalog) ByStock(stock string) (Vehicle, bool) {
	for _, v := range c.vehicles {
		if strings.EqualFold(v.Stock, stock) {
			return v, true
		}
	}
	return Vehicle{}, false
}

// BodyStyles returns the distinct body styles present, sorted.
func (c *Catalog) BodyStyles() []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range c.vehicles {
		if v.BodyStyle != "" && !seen[v.BodyStyle] {
			seen[v.BodyStyle] = true
			out = append(out, v.BodyStyle)
		}
	}
	sort.Strings(out)
	return out
}

// Models returns the distinct "Make Model" names present, sorted.
func (c *Catalog) Models() []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range c.vehicles {
		name := v.Make + " " + v.Model
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
