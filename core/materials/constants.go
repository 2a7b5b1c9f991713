package materials

// Mortar and concrete constants.
// One set applies to every wall kind; regional practice uses the same
// wastage, dry-volume and mix ratios for brick and block masonry.
const (
	MortarWastageFactor = 1.15 // 15% handling and application loss
	DryVolumeFactor     = 1.25 // dry constituents occupy 25% more than wet mortar
	CementParts         = 1.0  // cement:sand mortar ratio by volume
	SandParts           = 4.0
	CementBagVolume     = 1.25 // ft³ per 50 kg bag

	PlasterThicknessInches = 0.5 // single coat

	ConcreteDryVolumeFactor = 1.54 // wet concrete to dry constituent volume
)

// Mix is a nominal cement:sand:aggregate concrete mix by volume
type Mix struct {
	Cement    float64 `json:"cement"`
	Sand      float64 `json:"sand"`
	Aggregate float64 `json:"aggregate"`
}

// DefaultMix is the 1:2:4 nominal mix (M15) used for slabs, roofs and tanks
var DefaultMix = Mix{Cement: 1, Sand: 2, Aggregate: 4}

// Parts returns the total number of parts in the mix
func (m Mix) Parts() float64 {
	return m.Cement + m.Sand + m.Aggregate
}

// IsValid reports whether every part is positive
func (m Mix) IsValid() bool {
	return m.Cement > 0 && m.Sand > 0 && m.Aggregate > 0
}
