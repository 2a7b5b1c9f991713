package surface

import (
	"fmt"

	"buildcost/core/catalog"
	"buildcost/core/geometry"
	"buildcost/core/materials"
	"buildcost/core/types"
)

// Variant names
const (
	VariantMasonryWall = "masonry_wall"
	VariantCurtainWall = "curtain_wall"
	VariantSlab        = "slab"
	VariantTankFace    = "tank_face"
)

func catalogsOrBuiltin(c *catalog.Set) *catalog.Set {
	if c == nil {
		return catalog.Builtin()
	}
	return c
}

// Evaluate derives the wall's area, volume, bricks, mortar, plaster and finishes.
// Openings are deducted before the volume is taken.
func (w *MasonryWall) Evaluate(catalogs *catalog.Set) Quantities {
	catalogs = catalogsOrBuiltin(catalogs)
	q := newQuantities(w.Meta, VariantMasonryWall)

	q.Area = geometry.ComputeArea(w.Length, w.Height)
	q.OpeningsArea = geometry.ComputeOpeningsArea(w.Openings)
	if err := geometry.CheckOpenings(q.Area, q.OpeningsArea); err != nil {
		q.violate(err)
	}
	q.NetArea = geometry.NetArea(q.Area, q.OpeningsArea)
	q.Volume = geometry.ComputeVolume(q.NetArea, w.Thickness)

	if w.Tiling != nil {
		tileArea, err := geometry.ComputeTileArea(w.Tiling.Height, w.Length, w.Height)
		q.violate(err)
		q.TileArea = tileArea
	}
	if q.Blocked() {
		q.total()
		return q
	}

	if w.Material == "" {
		if q.Volume.Valid {
			q.assume("no brick or block type selected, masonry not quantified")
		}
	} else {
		spec, found := catalogs.Find(catalog.KindBrick, w.Material)
		if !found {
			q.assume(fmt.Sprintf("%q not in brick catalog, masonry not quantified", w.Material))
		} else if q.Volume.Valid {
			q.Masonry = materials.WallConsumption(q.Volume.Value, &spec)
			q.Items = append(q.Items, MaterialQuantity{
				Category: types.CategoryMasonry,
				Kind:     catalog.KindBrick,
				Material: w.Material,
				Spec:     spec,
				Found:    true,
				Quantity: float64(q.Masonry.NumUnits),
				Unit:     types.UnitPiece,
				Override: w.CostOverride,
				Formula:  fmt.Sprintf("round(%s ft³ / %g ft³ per unit)", q.Volume, spec.VolumePerUnitWithMortar),
			})
		}
	}

	q.plaster(q.NetArea, w.PlasterFaces)

	if w.ExteriorFinish != "" {
		q.finish(catalogs, catalog.KindExteriorFinish, types.CategoryFinish, w.ExteriorFinish, q.NetArea, "net area")
	}
	if w.Tiling != nil && q.TileArea.Valid {
		q.finish(catalogs, catalog.KindInteriorFinish, types.CategoryTiles, w.Tiling.Material, q.TileArea, "tile height × length")
	}
	if w.InteriorFinish != "" {
		q.finish(catalogs, catalog.KindInteriorFinish, types.CategoryFinish, w.InteriorFinish, untiled(q.NetArea, q.TileArea), "net area less tiles")
	}
	if w.Insulation != nil {
		q.insulate(catalogs, w.Insulation, q.NetArea)
	}

	q.total()
	return q
}

// Evaluate derives the glazed area. Curtain walls have no volume.
func (w *CurtainWall) Evaluate(catalogs *catalog.Set) Quantities {
	catalogs = catalogsOrBuiltin(catalogs)
	q := newQuantities(w.Meta, VariantCurtainWall)

	q.Area = geometry.ComputeArea(w.Length, w.Height)
	q.NetArea = q.Area

	if q.Area.Valid && w.GlassThickness != "" {
		spec, found := catalogs.Find(catalog.KindGlazing, w.GlassThickness)
		if !found && !w.CostOverride.Valid {
			q.assume(fmt.Sprintf("glass thickness %q not in glazing catalog", w.GlassThickness))
		}
		q.Items = append(q.Items, MaterialQuantity{
			Category: types.CategoryGlazing,
			Kind:     catalog.KindGlazing,
			Material: w.GlassThickness,
			Spec:     spec,
			Found:    found,
			Quantity: q.Area.Value,
			Unit:     types.UnitSquareFoot,
			Override: w.CostOverride,
			Formula:  "length × height",
		})
	}

	q.total()
	return q
}

// Evaluate derives the slab's area, concrete and ceiling plaster
func (s *Slab) Evaluate(catalogs *catalog.Set) Quantities {
	catalogs = catalogsOrBuiltin(catalogs)
	q := newQuantities(s.Meta, VariantSlab)

	q.Area = geometry.ComputeArea(s.Length, s.Width)
	q.NetArea = q.Area
	q.Volume = geometry.ComputeVolume(q.Area, s.Thickness)
	if q.Volume.Valid {
		q.Concrete = materials.Concrete(q.Volume.Value, s.Mix)
	}

	q.plaster(q.Area, s.PlasterFaces)
	if s.Insulation != nil {
		q.insulate(catalogs, s.Insulation, q.Area)
	}

	q.total()
	return q
}

// Evaluate derives the tank face's area, concrete, plaster and tiles
func (t *TankFace) Evaluate(catalogs *catalog.Set) Quantities {
	catalogs = catalogsOrBuiltin(catalogs)
	q := newQuantities(t.Meta, VariantTankFace)

	q.Area = geometry.ComputeArea(t.Length, t.Height)
	q.NetArea = q.Area
	q.Volume = geometry.ComputeVolume(q.Area, t.Thickness)

	if t.Tiling != nil {
		tileArea, err := geometry.ComputeTileArea(t.Tiling.Height, t.Length, t.Height)
		q.violate(err)
		q.TileArea = tileArea
	}
	if q.Blocked() {
		q.total()
		return q
	}

	if q.Volume.Valid {
		q.Concrete = materials.Concrete(q.Volume.Value, t.Mix)
	}
	q.plaster(q.Area, t.PlasterFaces)
	if t.Tiling != nil && q.TileArea.Valid {
		q.finish(catalogs, catalog.KindInteriorFinish, types.CategoryTiles, t.Tiling.Material, q.TileArea, "tile height × length")
	}

	q.total()
	return q
}

// plaster coats the given area on each face
func (q *Quantities) plaster(area types.Measure, faces int) {
	if faces == 0 || !area.Valid {
		return
	}
	q.PlasterArea = types.Some(area.Value * float64(faces)).Round(geometry.Places)
	q.Plaster = materials.Plaster(q.PlasterArea.Value)
}

func (q *Quantities) finish(catalogs *catalog.Set, kind catalog.Kind, category types.Category, name string, area types.Measure, formula string) {
	if !area.Positive() {
		return
	}
	spec, found := catalogs.Find(kind, name)
	if !found {
		q.assume(fmt.Sprintf("%q not in %s catalog, priced at zero", name, kind))
	}
	q.Items = append(q.Items, MaterialQuantity{
		Category: category,
		Kind:     kind,
		Material: name,
		Spec:     spec,
		Found:    found,
		Quantity: area.Value,
		Unit:     types.UnitSquareFoot,
		Override: types.None,
		Formula:  formula,
	})
}

func (q *Quantities) insulate(catalogs *catalog.Set, ins *Insulation, area types.Measure) {
	if !area.Positive() || !ins.Thickness.Positive() || ins.Material == "" {
		return
	}
	spec, found := catalogs.Find(catalog.KindInsulation, ins.Material)
	if !found {
		q.assume(fmt.Sprintf("%q not in insulation catalog, priced at zero", ins.Material))
	}
	q.Items = append(q.Items, MaterialQuantity{
		Category: types.CategoryInsulation,
		Kind:     catalog.KindInsulation,
		Material: ins.Material,
		Spec:     spec,
		Found:    found,
		Quantity: types.Round(area.Value*ins.Thickness.Value, geometry.Places),
		Unit:     types.UnitSqFtInch,
		Override: types.None,
		Formula:  fmt.Sprintf("%s ft² × %s in", area, ins.Thickness),
	})
}

// untiled is the wall area left for the interior finish once tiles are laid
func untiled(net, tiles types.Measure) types.Measure {
	if !net.Valid || !tiles.Valid {
		return net
	}
	if tiles.Value >= net.Value {
		return types.None
	}
	return types.Some(net.Value - tiles.Value).Round(geometry.Places)
}
