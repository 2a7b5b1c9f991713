// Package surface resolves raw surface input into typed surface variants.
//
// A SurfaceInput is form-shaped: every field may be present regardless of
// kind. Resolve inspects the kind and modifier flags once and produces a
// variant that carries only the fields relevant to it. Everything
// downstream switches on the variant, never on the raw flags.
package surface

import (
	"strings"

	"buildcost/core/catalog"
	"buildcost/core/materials"
	"buildcost/core/types"
	"buildcost/internal/errors"
)

// Surface is one resolved wall, slab, roof or tank face
type Surface interface {
	// Info returns identity shared by every variant
	Info() Meta

	// Evaluate derives geometry and material quantities.
	// A nil catalog set uses the builtin catalogs.
	Evaluate(catalogs *catalog.Set) Quantities
}

// Meta identifies a surface
type Meta struct {
	ID   string            `json:"id"`
	Name string            `json:"name,omitempty"`
	Kind types.SurfaceKind `json:"kind"`
}

// Info returns the metadata itself
func (m Meta) Info() Meta {
	return m
}

// Label returns the name, falling back to the id
func (m Meta) Label() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// Insulation is the optional insulation layer of a wall or slab
type Insulation struct {
	Material  string        `json:"material"`
	Thickness types.Measure `json:"thickness"`
}

// Tiling is the optional tiled band of a wall or tank face
type Tiling struct {
	Height   types.Measure `json:"height"`
	Material string        `json:"material"`
}

// MasonryWall is a brick or block wall
type MasonryWall struct {
	Meta
	Length       types.Measure `json:"length"`
	Height       types.Measure `json:"height"`
	Thickness    types.Measure `json:"thickness"`
	Material     string        `json:"material"`
	CostOverride types.Measure `json:"cost_override"`
	PlasterFaces int           `json:"plaster_faces"`

	ExteriorFinish string          `json:"exterior_finish,omitempty"`
	InteriorFinish string          `json:"interior_finish,omitempty"`
	Openings       []types.Opening `json:"openings,omitempty"`

	Insulation *Insulation `json:"insulation,omitempty"`
	Tiling     *Tiling     `json:"tiling,omitempty"`
}

// CurtainWall is a glazed wall. It has area but no volume.
type CurtainWall struct {
	Meta
	Length         types.Measure `json:"length"`
	Height         types.Measure `json:"height"`
	GlassThickness string        `json:"glass_thickness"`
	CostOverride   types.Measure `json:"cost_override"`
}

// Slab is a concrete floor slab or roof
type Slab struct {
	Meta
	Length       types.Measure `json:"length"`
	Width        types.Measure `json:"width"`
	Thickness    types.Measure `json:"thickness"`
	Mix          materials.Mix `json:"mix"`
	PlasterFaces int           `json:"plaster_faces"`

	Insulation *Insulation `json:"insulation,omitempty"`
}

// TankFace is one concrete face of a water tank
type TankFace struct {
	Meta
	Length       types.Measure `json:"length"`
	Height       types.Measure `json:"height"`
	Thickness    types.Measure `json:"thickness"`
	Mix          materials.Mix `json:"mix"`
	PlasterFaces int           `json:"plaster_faces"`

	Tiling *Tiling `json:"tiling,omitempty"`
}

// Option adjusts resolution
type Option func(*options)

type options struct {
	mix materials.Mix
}

// WithMix sets the concrete mix used for slabs, roofs and tank faces
func WithMix(mix materials.Mix) Option {
	return func(o *options) {
		if mix.IsValid() {
			o.mix = mix
		}
	}
}

// Resolve converts raw input into a surface variant.
// Only an unknown kind is an error; missing dimensions resolve fine and
// simply evaluate to nothing computable.
func Resolve(in types.SurfaceInput, opts ...Option) (Surface, error) {
	o := options{mix: materials.DefaultMix}
	for _, opt := range opts {
		opt(&o)
	}

	kind := types.SurfaceKind(strings.ToLower(strings.TrimSpace(string(in.Kind))))
	if !kind.IsValid() {
		return nil, errors.Newf(errors.TypeInput, "unknown surface kind %q", in.Kind).
			WithContext("surface_id", in.ID)
	}
	meta := Meta{ID: in.ID, Name: in.Name, Kind: kind}

	switch kind {
	case types.KindWall:
		if in.IsCurtainWall {
			return &CurtainWall{
				Meta:           meta,
				Length:         in.Length,
				Height:         in.Height,
				GlassThickness: strings.TrimSpace(in.GlassThickness),
				CostOverride:   in.CostOverride,
			}, nil
		}
		return &MasonryWall{
			Meta:           meta,
			Length:         in.Length,
			Height:         in.Height,
			Thickness:      in.Thickness,
			Material:       strings.TrimSpace(in.Material),
			CostOverride:   in.CostOverride,
			PlasterFaces:   clampFaces(in.PlasterFaces),
			ExteriorFinish: strings.TrimSpace(in.ExteriorFinish),
			InteriorFinish: strings.TrimSpace(in.InteriorFinish),
			Openings:       in.Openings,
			Insulation:     resolveInsulation(in),
			Tiling:         resolveTiling(in),
		}, nil

	case types.KindSlab, types.KindRoof:
		return &Slab{
			Meta:         meta,
			Length:       in.Length,
			Width:        in.Width,
			Thickness:    in.Thickness,
			Mix:          o.mix,
			PlasterFaces: clampFaces(in.PlasterFaces),
			Insulation:   resolveInsulation(in),
		}, nil

	default:
		return &TankFace{
			Meta:         meta,
			Length:       in.Length,
			Height:       in.Height,
			Thickness:    in.Thickness,
			Mix:          o.mix,
			PlasterFaces: clampFaces(in.PlasterFaces),
			Tiling:       resolveTiling(in),
		}, nil
	}
}

func resolveInsulation(in types.SurfaceInput) *Insulation {
	if !in.IsInsulationUsed {
		return nil
	}
	return &Insulation{
		Material:  strings.TrimSpace(in.Insulation),
		Thickness: in.InsulationThickness,
	}
}

func resolveTiling(in types.SurfaceInput) *Tiling {
	if !in.IsTilesUsed {
		return nil
	}
	material := strings.TrimSpace(in.TileMaterial)
	if material == "" {
		material = catalog.DefaultTileMaterial
	}
	return &Tiling{Height: in.TileHeight, Material: material}
}

// clampFaces keeps the plaster face count within 0..2
func clampFaces(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 2:
		return 2
	default:
		return n
	}
}
