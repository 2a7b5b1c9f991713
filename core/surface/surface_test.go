package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildcost/core/catalog"
	"buildcost/core/materials"
	"buildcost/core/types"
	"buildcost/internal/errors"
)

func wallInput() types.SurfaceInput {
	return types.SurfaceInput{
		ID:        "w1",
		Kind:      types.KindWall,
		Length:    types.Some(10),
		Height:    types.Some(8),
		Thickness: types.Some(6),
		Material:  "Clay Brick",
	}
}

func TestResolveVariants(t *testing.T) {
	tests := []struct {
		name  string
		input types.SurfaceInput
		want  interface{}
	}{
		{"masonry wall", types.SurfaceInput{Kind: types.KindWall}, &MasonryWall{}},
		{"curtain wall", types.SurfaceInput{Kind: types.KindWall, IsCurtainWall: true}, &CurtainWall{}},
		{"slab", types.SurfaceInput{Kind: types.KindSlab}, &Slab{}},
		{"roof", types.SurfaceInput{Kind: types.KindRoof}, &Slab{}},
		{"tank", types.SurfaceInput{Kind: types.KindTank}, &TankFace{}},
		{"kind is case-insensitive", types.SurfaceInput{Kind: " Wall "}, &MasonryWall{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Resolve(tt.input)
			require.NoError(t, err)
			assert.IsType(t, tt.want, s)
		})
	}
}

func TestResolveUnknownKind(t *testing.T) {
	_, err := Resolve(types.SurfaceInput{ID: "x", Kind: "chimney"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestResolveKeepsOnlyRelevantModifiers(t *testing.T) {
	in := wallInput()
	in.IsTilesUsed = true
	in.TileHeight = types.Some(4)
	in.InsulationThickness = types.Some(2) // flag off, ignored
	in.PlasterFaces = 5

	s, err := Resolve(in)
	require.NoError(t, err)
	wall := s.(*MasonryWall)

	require.NotNil(t, wall.Tiling)
	assert.Equal(t, catalog.DefaultTileMaterial, wall.Tiling.Material)
	assert.Nil(t, wall.Insulation)
	assert.Equal(t, 2, wall.PlasterFaces)
	assert.Equal(t, "w1", wall.Info().ID)
}

func TestMasonryWallEvaluate(t *testing.T) {
	s, err := Resolve(wallInput())
	require.NoError(t, err)

	q := s.Evaluate(nil)
	assert.Equal(t, VariantMasonryWall, q.Variant)
	assert.Equal(t, types.Some(80), q.Area)
	assert.Equal(t, types.Some(80), q.NetArea)
	assert.Equal(t, types.Some(40), q.Volume)
	assert.Equal(t, int64(566), q.Masonry.NumUnits)
	assert.InDelta(t, 2.11, q.Masonry.CementBags, 0.01)
	assert.Equal(t, q.Masonry, q.Consumption)
	assert.Empty(t, q.Violations)

	require.Len(t, q.Items, 1)
	assert.Equal(t, types.CategoryMasonry, q.Items[0].Category)
	assert.Equal(t, 566.0, q.Items[0].Quantity)
}

func TestMasonryWallPlasterIsAdditive(t *testing.T) {
	in := wallInput()
	in.PlasterFaces = 2

	s, _ := Resolve(in)
	q := s.Evaluate(nil)

	assert.Equal(t, types.Some(160), q.PlasterArea)
	assert.Equal(t, materials.Plaster(160), q.Plaster)
	assert.InDelta(t, q.Masonry.CementBags+q.Plaster.CementBags, q.Consumption.CementBags, 1e-12)
	assert.Equal(t, q.Masonry.NumUnits, q.Consumption.NumUnits)
}

func TestMasonryWallPartialInput(t *testing.T) {
	in := wallInput()
	in.Height = types.None

	s, _ := Resolve(in)
	q := s.Evaluate(nil)

	assert.False(t, q.Area.Valid)
	assert.False(t, q.Volume.Valid)
	assert.True(t, q.Consumption.IsZero())
	assert.Empty(t, q.Violations)
	assert.Empty(t, q.Items)
}

func TestMasonryWallTileViolation(t *testing.T) {
	in := wallInput()
	in.IsTilesUsed = true
	in.TileHeight = types.Some(9)

	s, _ := Resolve(in)
	q := s.Evaluate(nil)

	require.Len(t, q.Violations, 1)
	assert.Equal(t, errors.CodeTileHeightExceedsWallHeight, q.Violations[0].Code)
	assert.False(t, q.TileArea.Valid)
	assert.True(t, q.Consumption.IsZero(), "violation blocks the result")
	assert.True(t, q.Blocked())
}

func TestMasonryWallOpenings(t *testing.T) {
	in := wallInput()
	in.Openings = []types.Opening{{Kind: "door", Width: types.Some(3), Height: types.Some(7)}}

	s, _ := Resolve(in)
	q := s.Evaluate(nil)
	assert.Equal(t, types.Some(21), q.OpeningsArea)
	assert.Equal(t, types.Some(59), q.NetArea)
	assert.Equal(t, types.Some(29.5), q.Volume)

	in.Openings = append(in.Openings, types.Opening{Kind: "window", Width: types.Some(10), Height: types.Some(6)})
	s, _ = Resolve(in)
	q = s.Evaluate(nil)
	require.Len(t, q.Violations, 1)
	assert.Equal(t, errors.CodeOpeningsExceedWallArea, q.Violations[0].Code)
	assert.False(t, q.Volume.Valid)
}

func TestMasonryWallUnknownMaterial(t *testing.T) {
	in := wallInput()
	in.Material = "Mud Brick"

	s, _ := Resolve(in)
	q := s.Evaluate(nil)

	assert.Equal(t, types.Some(40), q.Volume)
	assert.True(t, q.Masonry.IsZero())
	require.Len(t, q.Assumptions, 1)
	assert.Contains(t, q.Assumptions[0], "Mud Brick")
}

func TestMasonryWallFinishesAndTiles(t *testing.T) {
	in := wallInput()
	in.IsTilesUsed = true
	in.TileHeight = types.Some(4)
	in.InteriorFinish = "Plaster and Emulsion Paint"
	in.ExteriorFinish = "Weather Shield Paint"
	in.IsInsulationUsed = true
	in.Insulation = "EPS Board"
	in.InsulationThickness = types.Some(2)

	s, _ := Resolve(in)
	q := s.Evaluate(nil)

	assert.Equal(t, types.Some(40), q.TileArea)
	quantities := map[types.Category][]float64{}
	for _, item := range q.Items {
		assert.True(t, item.Found, item.Material)
		quantities[item.Category] = append(quantities[item.Category], item.Quantity)
	}
	assert.Equal(t, []float64{40}, quantities[types.CategoryTiles])
	assert.Equal(t, []float64{80, 40}, quantities[types.CategoryFinish], "exterior on net area, interior on untiled area")
	assert.Equal(t, []float64{160}, quantities[types.CategoryInsulation])
}

func TestCurtainWallHasNoVolume(t *testing.T) {
	in := wallInput()
	in.IsCurtainWall = true
	in.GlassThickness = "10mm"

	s, _ := Resolve(in)
	q := s.Evaluate(nil)

	assert.Equal(t, types.Some(80), q.Area)
	assert.False(t, q.Volume.Valid)
	assert.True(t, q.Consumption.IsZero())
	require.Len(t, q.Items, 1)
	assert.Equal(t, types.CategoryGlazing, q.Items[0].Category)
	assert.True(t, q.Items[0].Found)
}

func TestSlabUsesConcrete(t *testing.T) {
	s, err := Resolve(types.SurfaceInput{
		ID:        "s1",
		Kind:      types.KindRoof,
		Length:    types.Some(20),
		Width:     types.Some(12),
		Thickness: types.Some(5),
	})
	require.NoError(t, err)

	q := s.Evaluate(nil)
	assert.Equal(t, types.Some(240), q.Area)
	assert.Equal(t, types.Some(100), q.Volume)
	assert.Equal(t, materials.Concrete(100, materials.DefaultMix), q.Concrete)
	assert.Zero(t, q.Consumption.NumUnits)
}

func TestSlabWithMix(t *testing.T) {
	in := types.SurfaceInput{Kind: types.KindSlab, Length: types.Some(10), Width: types.Some(10), Thickness: types.Some(6)}
	rich := materials.Mix{Cement: 1, Sand: 1.5, Aggregate: 3}

	s, _ := Resolve(in, WithMix(rich))
	assert.Equal(t, rich, s.(*Slab).Mix)

	s, _ = Resolve(in, WithMix(materials.Mix{}))
	assert.Equal(t, materials.DefaultMix, s.(*Slab).Mix)
}

func TestTankFaceTileViolation(t *testing.T) {
	s, _ := Resolve(types.SurfaceInput{
		Kind:        types.KindTank,
		Length:      types.Some(6),
		Height:      types.Some(5),
		Thickness:   types.Some(9),
		IsTilesUsed: true,
		TileHeight:  types.Some(6),
	})

	q := s.Evaluate(nil)
	require.Len(t, q.Violations, 1)
	assert.Equal(t, errors.CodeTileHeightExceedsWallHeight, q.Violations[0].Code)
	assert.True(t, q.Concrete.IsZero())
}

func TestEvaluateIsIdempotent(t *testing.T) {
	s, _ := Resolve(wallInput())
	assert.Equal(t, s.Evaluate(nil), s.Evaluate(catalog.Builtin()))
}
