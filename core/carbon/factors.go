// Package carbon provides embodied-carbon modeling for building materials.
// Values are in kgCO2e (cradle-to-gate).
package carbon

import (
	"math"

	"buildcost/core/catalog"
	"buildcost/core/materials"
)

// Factors are the embodied-carbon intensities of the bulk consumables
type Factors struct {
	// CementPerBag is kgCO2e per 50 kg bag of ordinary Portland cement
	CementPerBag float64 `json:"cement_per_bag"`

	// SandPerCubicFoot is kgCO2e per ft³ of dry sand
	SandPerCubicFoot float64 `json:"sand_per_cuft"`

	// AggregatePerCubicFoot is kgCO2e per ft³ of crushed aggregate
	AggregatePerCubicFoot float64 `json:"aggregate_per_cuft"`
}

// DefaultFactors returns approximate ICE database intensities
func DefaultFactors() Factors {
	return Factors{
		CementPerBag:          46.5, // 0.93 kgCO2e/kg * 50 kg
		SandPerCubicFoot:      0.23, // 0.0051 kgCO2e/kg * ~45 kg
		AggregatePerCubicFoot: 0.32, // 0.0048 kgCO2e/kg * ~67 kg
	}
}

// Cement returns the carbon of a number of cement bags
func (f Factors) Cement(bags float64) float64 {
	return positive(bags) * f.CementPerBag
}

// Sand returns the carbon of a sand volume
func (f Factors) Sand(volume float64) float64 {
	return positive(volume) * f.SandPerCubicFoot
}

// Aggregate returns the carbon of an aggregate volume
func (f Factors) Aggregate(volume float64) float64 {
	return positive(volume) * f.AggregatePerCubicFoot
}

// ForConsumption returns the carbon of the bulk consumables in c.
// Bricks and blocks are counted separately through ForMaterial since
// their intensity depends on the catalog entry.
func (f Factors) ForConsumption(c materials.Consumption) float64 {
	return f.Cement(c.CementBags) + f.Sand(c.SandVolume) + f.Aggregate(c.AggregateVolume)
}

// ForMaterial returns the carbon of qty units of a catalog material
func ForMaterial(spec catalog.MaterialSpec, qty float64) float64 {
	return positive(qty) * positive(spec.CarbonPerUnit)
}

func positive(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
