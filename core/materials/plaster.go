package materials

import "math"

// plasterWetVolume is the wet mortar of a single coat over area ft²
func plasterWetVolume(area float64) float64 {
	if !(area > 0) || math.IsInf(area, 0) {
		return 0
	}
	return area * PlasterThicknessInches / 12
}

// Plaster derives cement and sand for a plaster coat over area ft².
// It uses the same wastage, dry-volume factor and 1:4 mix as masonry
// mortar and is added to the wall consumption by the caller.
func Plaster(area float64) Consumption {
	wet := plasterWetVolume(area)
	if wet == 0 {
		return Consumption{}
	}
	return splitMortar(wet)
}

// PlasterCementBags returns the cement bags for a plaster coat over area ft²
func PlasterCementBags(area float64) float64 {
	return Plaster(area).CementBags
}

// PlasterSandVolume returns the sand ft³ for a plaster coat over area ft²
func PlasterSandVolume(area float64) float64 {
	return Plaster(area).SandVolume
}
