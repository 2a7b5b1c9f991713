// Package types defines core domain types shared across all layers.
// This package contains NO estimation logic - only type definitions.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// SurfaceKind identifies what a dimensioned surface is
type SurfaceKind string

const (
	KindWall SurfaceKind = "wall"
	KindSlab SurfaceKind = "slab"
	KindRoof SurfaceKind = "roof"
	KindTank SurfaceKind = "tank"
)

// String returns the string representation of the kind
func (k SurfaceKind) String() string {
	return string(k)
}

// IsValid checks if the kind is a known surface kind
func (k SurfaceKind) IsValid() bool {
	switch k {
	case KindWall, KindSlab, KindRoof, KindTank:
		return true
	default:
		return false
	}
}

// SurfaceKinds lists every known kind in display order
func SurfaceKinds() []SurfaceKind {
	return []SurfaceKind{KindWall, KindSlab, KindRoof, KindTank}
}

// MarlaSize is the number of square feet in one marla.
// Only the two regional conventions below are accepted.
type MarlaSize int

const (
	MarlaSize252 MarlaSize = 252
	MarlaSize272 MarlaSize = 272
)

// IsValid checks if the size is one of the accepted conventions
func (m MarlaSize) IsValid() bool {
	return m == MarlaSize252 || m == MarlaSize272
}

// SquareFeet returns the size as a float
func (m MarlaSize) SquareFeet() float64 {
	return float64(m)
}

// ParseMarlaSize parses "252" or "272"
func ParseMarlaSize(s string) (MarlaSize, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid marla size %q: %w", s, err)
	}
	size := MarlaSize(n)
	if !size.IsValid() {
		return 0, fmt.Errorf("invalid marla size %d: must be %d or %d", n, MarlaSize252, MarlaSize272)
	}
	return size, nil
}

// Unit is the billing or measurement unit of a quantity
type Unit string

const (
	UnitPiece      Unit = "unit"
	UnitBag        Unit = "bag"
	UnitSquareFoot Unit = "sqft"
	UnitCubicFoot  Unit = "cuft"
	UnitSqFtInch   Unit = "sqft-in"
)

// String returns the string representation
func (u Unit) String() string {
	return string(u)
}
