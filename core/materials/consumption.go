// Package materials derives consumable quantities (bricks or blocks,
// cement, sand, aggregate) from wall, plaster and concrete volumes.
//
// The calculators are pure: full-precision results, no rounding beyond the
// whole-unit brick count, and a zero result instead of an error whenever the
// input is not computable or the material reference is malformed.
package materials

// Consumption is the material take-off of one surface or a sum of many
type Consumption struct {
	NumUnits        int64   `json:"num_units"`
	MortarVolume    float64 `json:"mortar_volume"`
	CementVolume    float64 `json:"cement_volume"`
	SandVolume      float64 `json:"sand_volume"`
	AggregateVolume float64 `json:"aggregate_volume,omitempty"`
	CementBags      float64 `json:"cement_bags"`
}

// Add returns the element-wise sum of two consumptions
func (c Consumption) Add(o Consumption) Consumption {
	return Consumption{
		NumUnits:        c.NumUnits + o.NumUnits,
		MortarVolume:    c.MortarVolume + o.MortarVolume,
		CementVolume:    c.CementVolume + o.CementVolume,
		SandVolume:      c.SandVolume + o.SandVolume,
		AggregateVolume: c.AggregateVolume + o.AggregateVolume,
		CementBags:      c.CementBags + o.CementBags,
	}
}

// IsZero reports whether nothing is consumed
func (c Consumption) IsZero() bool {
	return c == Consumption{}
}

// Sum adds a list of consumptions
func Sum(cs ...Consumption) Consumption {
	var total Consumption
	for _, c := range cs {
		total = total.Add(c)
	}
	return total
}

// splitMortar turns a wet mortar volume into dry cement and sand
func splitMortar(wetMortar float64) Consumption {
	withWastage := wetMortar * MortarWastageFactor
	dry := withWastage * DryVolumeFactor
	parts := CementParts + SandParts
	cement := dry * CementParts / parts
	return Consumption{
		MortarVolume: dry,
		CementVolume: cement,
		SandVolume:   dry * SandParts / parts,
		CementBags:   cement / CementBagVolume,
	}
}
