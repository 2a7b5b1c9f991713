package materials

import (
	"math"

	"buildcost/core/catalog"
)

// WallConsumption derives bricks/blocks, cement and sand for a wall volume.
//
//  1. units = volume / unit volume with mortar, rounded to whole units
//  2. solid volume = units * unit volume without mortar
//  3. wet mortar = volume - solid volume
//  4. apply 15% wastage
//  5. apply 25% dry-volume factor
//  6. split 1:4 cement:sand
//  7. bags = cement volume / 1.25 ft³
//
// A non-positive volume, a nil spec or unusable unit volumes give a zero result.
func WallConsumption(wallVolume float64, spec *catalog.MaterialSpec) Consumption {
	if !(wallVolume > 0) || math.IsInf(wallVolume, 0) || spec == nil {
		return Consumption{}
	}
	withMortar := spec.VolumePerUnitWithMortar
	withoutMortar := spec.VolumePerUnitWithoutMortar
	if !(withMortar > 0) || math.IsInf(withMortar, 0) || !(withoutMortar >= 0) {
		return Consumption{}
	}

	units := math.Round(wallVolume / withMortar)
	solid := units * withoutMortar
	wet := wallVolume - solid
	if wet < 0 {
		wet = 0
	}

	c := splitMortar(wet)
	c.NumUnits = int64(units)
	return c
}
