// Package types - Project input types
package types

// Project is a set of dimensioned surfaces on one plot
type Project struct {
	// ID uniquely identifies this project
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Name is a human-readable project name
	Name string `json:"name" yaml:"name"`

	// PlotSizeMarlas is the plot size in marlas
	PlotSizeMarlas Measure `json:"plot_size_marlas" yaml:"plot_size_marlas"`

	// MarlaSize is the regional marla convention (252 or 272 sq ft)
	MarlaSize MarlaSize `json:"marla_size,omitempty" yaml:"marla_size,omitempty"`

	// Currency overrides the configured currency
	Currency Currency `json:"currency,omitempty" yaml:"currency,omitempty"`

	// Surfaces are the walls, slabs, roofs and tank faces to estimate
	Surfaces []SurfaceInput `json:"surfaces" yaml:"surfaces"`
}

// SurfaceInput is the raw, form-shaped description of one surface.
// Every dimension may be missing; resolution decides what is computable.
type SurfaceInput struct {
	// ID uniquely identifies this surface within the project
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Name is a human-readable label (e.g. "north boundary wall")
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Kind is wall, slab, roof or tank
	Kind SurfaceKind `json:"kind" yaml:"kind"`

	// Length in feet
	Length Measure `json:"length" yaml:"length"`

	// Height in feet (walls and tank faces)
	Height Measure `json:"height" yaml:"height"`

	// Width in feet (slabs and roofs)
	Width Measure `json:"width" yaml:"width"`

	// Thickness in inches
	Thickness Measure `json:"thickness" yaml:"thickness"`

	// Material is the brick/block catalog name for masonry walls
	Material string `json:"material,omitempty" yaml:"material,omitempty"`

	// CostOverride replaces the catalog cost per unit of Material
	CostOverride Measure `json:"cost_override" yaml:"cost_override"`

	IsCurtainWall  bool   `json:"is_curtain_wall,omitempty" yaml:"is_curtain_wall,omitempty"`
	GlassThickness string `json:"glass_thickness,omitempty" yaml:"glass_thickness,omitempty"`

	IsInsulationUsed    bool    `json:"is_insulation_used,omitempty" yaml:"is_insulation_used,omitempty"`
	Insulation          string  `json:"insulation,omitempty" yaml:"insulation,omitempty"`
	InsulationThickness Measure `json:"insulation_thickness" yaml:"insulation_thickness"`

	IsTilesUsed  bool    `json:"is_tiles_used,omitempty" yaml:"is_tiles_used,omitempty"`
	TileHeight   Measure `json:"tile_height" yaml:"tile_height"`
	TileMaterial string  `json:"tile_material,omitempty" yaml:"tile_material,omitempty"`

	ExteriorFinish string `json:"exterior_finish,omitempty" yaml:"exterior_finish,omitempty"`
	InteriorFinish string `json:"interior_finish,omitempty" yaml:"interior_finish,omitempty"`

	// PlasterFaces is how many faces (0, 1 or 2) receive a plaster coat
	PlasterFaces int `json:"plaster_faces,omitempty" yaml:"plaster_faces,omitempty"`

	// Openings are doors and windows cut out of a wall
	Openings []Opening `json:"openings,omitempty" yaml:"openings,omitempty"`
}

// Opening is a door or window in a wall
type Opening struct {
	Name   string  `json:"name,omitempty" yaml:"name,omitempty"`
	Kind   string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Width  Measure `json:"width" yaml:"width"`
	Height Measure `json:"height" yaml:"height"`
	Count  int     `json:"count,omitempty" yaml:"count,omitempty"`
}

// Quantity returns the number of identical openings, at least one
func (o Opening) Quantity() int {
	if o.Count < 1 {
		return 1
	}
	return o.Count
}
