package materials

import "math"

// Concrete derives cement, sand and aggregate for a wet concrete volume.
// An invalid mix falls back to DefaultMix.
func Concrete(volume float64, mix Mix) Consumption {
	if !(volume > 0) || math.IsInf(volume, 0) {
		return Consumption{}
	}
	if !mix.IsValid() {
		mix = DefaultMix
	}

	dry := volume * ConcreteDryVolumeFactor
	parts := mix.Parts()
	cement := dry * mix.Cement / parts
	return Consumption{
		CementVolume:    cement,
		SandVolume:      dry * mix.Sand / parts,
		AggregateVolume: dry * mix.Aggregate / parts,
		CementBags:      cement / CementBagVolume,
	}
}
