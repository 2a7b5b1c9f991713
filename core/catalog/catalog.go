// Package catalog - Authoritative building material catalogs
// Defines the fixed, compiled-in lists of selectable materials.
// Catalogs are read-only once built; callers only look entries up.
package catalog

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"buildcost/core/types"
	"buildcost/internal/errors"
)

// Kind identifies one of the fixed catalogs
type Kind string

const (
	// KindBrick - wall brick and block types
	KindBrick Kind = "brick"
	// KindExteriorFinish - exterior wall finishes, priced per sq ft
	KindExteriorFinish Kind = "exterior_finish"
	// KindInteriorFinish - interior wall finishes and tiles, priced per sq ft
	KindInteriorFinish Kind = "interior_finish"
	// KindInsulation - insulation, priced per sq ft per inch of thickness
	KindInsulation Kind = "insulation"
	// KindGlazing - curtain wall glass keyed by thickness, priced per sq ft
	KindGlazing Kind = "glazing"
)

// String returns string representation
func (k Kind) String() string {
	return string(k)
}

// Kinds lists every catalog kind in display order
func Kinds() []Kind {
	return []Kind{KindBrick, KindExteriorFinish, KindInteriorFinish, KindInsulation, KindGlazing}
}

// ParseKind resolves a catalog kind name
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", errors.NotFound("catalog", s)
}

// MaterialSpec is a catalog entry for one selectable material
type MaterialSpec struct {
	Name        string          `json:"name"`
	Kind        Kind            `json:"kind"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	Unit        types.Unit      `json:"unit"`

	// Brick/block only, in cubic feet
	VolumePerUnitWithMortar    float64 `json:"volume_per_unit_with_mortar,omitempty"`
	VolumePerUnitWithoutMortar float64 `json:"volume_per_unit_without_mortar,omitempty"`

	// CarbonPerUnit is embodied carbon in kgCO2e per Unit
	CarbonPerUnit float64 `json:"carbon_per_unit"`

	Notes string `json:"notes,omitempty"`
}

// Catalog is one fixed material list
type Catalog struct {
	kind       Kind
	entries    map[string]*MaterialSpec
	order      []string
	duplicates []string
}

// NewCatalog creates a new empty catalog of the given kind
func NewCatalog(kind Kind) *Catalog {
	return &Catalog{
		kind:    kind,
		entries: make(map[string]*MaterialSpec),
	}
}

// Register adds a material to the catalog.
// Only used while building the builtin catalogs. A repeated name keeps
// the first entry and is reported by Set.Validate.
func (c *Catalog) Register(spec MaterialSpec) {
	spec.Kind = c.kind
	if _, exists := c.entries[spec.Name]; exists {
		c.duplicates = append(c.duplicates, spec.Name)
		return
	}
	c.order = append(c.order, spec.Name)
	c.entries[spec.Name] = &spec
}

// Kind returns the catalog kind
func (c *Catalog) Kind() Kind {
	return c.kind
}

// Get returns a copy of the named entry (exact, case-sensitive)
func (c *Catalog) Get(name string) (MaterialSpec, bool) {
	spec, ok := c.entries[name]
	if !ok {
		return MaterialSpec{}, false
	}
	return *spec, true
}

// All returns copies of every entry in declaration order
func (c *Catalog) All() []MaterialSpec {
	out := make([]MaterialSpec, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, *c.entries[name])
	}
	return out
}

// Names returns entry names in declaration order
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.order)
}

// FindMaterial resolves a material name against a catalog.
// A miss is a normal outcome: callers fall back to an override cost.
func FindMaterial(c *Catalog, name string) (MaterialSpec, bool) {
	if c == nil || name == "" {
		return MaterialSpec{}, false
	}
	return c.Get(name)
}

// Set holds one catalog per kind
type Set struct {
	catalogs map[Kind]*Catalog
}

// NewSet creates a set from catalogs
func NewSet(catalogs ...*Catalog) *Set {
	s := &Set{catalogs: make(map[Kind]*Catalog, len(catalogs))}
	for _, c := range catalogs {
		s.catalogs[c.kind] = c
	}
	return s
}

// Get returns the catalog of the given kind
func (s *Set) Get(kind Kind) (*Catalog, bool) {
	c, ok := s.catalogs[kind]
	return c, ok
}

// MustGet returns the catalog of the given kind or panics
func (s *Set) MustGet(kind Kind) *Catalog {
	c, ok := s.catalogs[kind]
	if !ok {
		panic(fmt.Sprintf("catalog %s not registered", kind))
	}
	return c
}

// Find looks a material up in the catalog of the given kind
func (s *Set) Find(kind Kind, name string) (MaterialSpec, bool) {
	c, _ := s.Get(kind)
	return FindMaterial(c, name)
}

var (
	builtinOnce sync.Once
	builtin     *Set
)

// Builtin returns the compiled-in catalogs, built and validated once
func Builtin() *Set {
	builtinOnce.Do(func() {
		bricks := NewCatalog(KindBrick)
		RegisterBricks(bricks)

		exterior := NewCatalog(KindExteriorFinish)
		RegisterExteriorFinishes(exterior)

		interior := NewCatalog(KindInteriorFinish)
		RegisterInteriorFinishes(interior)

		insulation := NewCatalog(KindInsulation)
		RegisterInsulation(insulation)

		glazing := NewCatalog(KindGlazing)
		RegisterGlazing(glazing)

		s := NewSet(bricks, exterior, interior, insulation, glazing)
		s.MustValidate()
		builtin = s
	})
	return builtin
}
