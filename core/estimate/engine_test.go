package estimate

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"buildcost/core/types"
	"buildcost/internal/errors"
)

func testProject() *types.Project {
	return &types.Project{
		Name:           "Test House",
		PlotSizeMarlas: types.Some(10),
		Surfaces: []types.SurfaceInput{
			{
				ID:        "w1",
				Name:      "north wall",
				Kind:      types.KindWall,
				Length:    types.Some(10),
				Height:    types.Some(8),
				Thickness: types.Some(6),
				Material:  "Clay Brick",
			},
			{
				ID:        "w2",
				Name:      "south wall",
				Kind:      types.KindWall,
				Length:    types.Some(10),
				Height:    types.Some(8),
				Thickness: types.Some(6),
				Material:  "Clay Brick",
			},
			{
				ID:        "s1",
				Kind:      types.KindSlab,
				Length:    types.Some(10),
				Width:     types.Some(10),
				Thickness: types.Some(6),
			},
		},
	}
}

func newTestEngine(workers int) *Engine {
	cfg := DefaultConfig()
	cfg.Workers = workers
	return NewEngine(cfg, WithLogger(zap.NewNop()))
}

func TestEstimateTotals(t *testing.T) {
	result, err := newTestEngine(2).Estimate(context.Background(), testProject())
	require.NoError(t, err)

	assert.Len(t, result.Surfaces, 3)
	assert.Equal(t, int64(1132), result.Totals.UnitsByMaterial["Clay Brick"])
	assert.Equal(t, []string{"Clay Brick"}, result.Totals.Materials())
	assert.InDelta(t, 260.0, result.Totals.Area, 1e-9)
	assert.InDelta(t, 130.0, result.Totals.Volume, 1e-9)
	assert.Equal(t, types.Some(2720), result.PlotArea)
	assert.Len(t, result.InputHash, 64)
	assert.Equal(t, types.CurrencyPKR, result.Metadata.Currency)

	// 2 walls * 2.108 bags + slab 50 ft³ * 1.54 / 7 / 1.25
	assert.InDelta(t, 2*2.1078+8.8, result.Totals.Consumption.CementBags, 0.01)
	assert.True(t, result.Totals.Cost.Equal(result.BOQ.TotalCost))
	assert.Greater(t, result.Totals.CarbonKg, 0.0)
}

func TestEstimateLineItems(t *testing.T) {
	result, err := newTestEngine(1).Estimate(context.Background(), testProject())
	require.NoError(t, err)

	wall := result.Surfaces[0]
	require.Len(t, wall.Items, 3, "bricks, cement, sand")

	bricks := wall.Items[0]
	assert.Equal(t, "w1/01-masonry", bricks.ID)
	assert.True(t, bricks.Quantity.Equal(decimal.NewFromInt(566)))
	assert.True(t, bricks.Amount.Equal(decimal.NewFromInt(566*17)))
	assert.InDelta(t, 566*0.72, bricks.CarbonKg, 1e-9)

	cement := wall.Items[1]
	assert.Equal(t, types.CategoryCement, cement.Category)
	assert.True(t, cement.Quantity.Equal(decimal.NewFromFloat(2.11)))
	assert.True(t, cement.Amount.Equal(decimal.NewFromFloat(2.11).Mul(decimal.NewFromInt(1450))))

	slab := result.Surfaces[2]
	categories := []types.Category{}
	for _, item := range slab.Items {
		categories = append(categories, item.Category)
	}
	assert.Equal(t, []types.Category{types.CategoryCement, types.CategorySand, types.CategoryAggregate}, categories)

	assert.Len(t, result.BOQ.Items, 9)
	assert.True(t, result.BOQ.BySurface["w1"].Cost.Equal(wall.Cost))
}

func TestEstimateIsDeterministic(t *testing.T) {
	first, err := newTestEngine(1).Estimate(context.Background(), testProject())
	require.NoError(t, err)
	second, err := newTestEngine(8).Estimate(context.Background(), testProject())
	require.NoError(t, err)

	assert.True(t, first.BOQ.TotalCost.Equal(second.BOQ.TotalCost))
	assert.Equal(t, first.InputHash, second.InputHash)
	require.Len(t, second.BOQ.Items, len(first.BOQ.Items))
	for i := range first.BOQ.Items {
		assert.Equal(t, first.BOQ.Items[i].ID, second.BOQ.Items[i].ID)
	}
}

func TestEstimateViolationsAreNotFatal(t *testing.T) {
	p := testProject()
	p.Surfaces[0].IsTilesUsed = true
	p.Surfaces[0].TileHeight = types.Some(9)

	result, err := newTestEngine(2).Estimate(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, 1, result.ViolationCount())
	assert.Equal(t, 1, result.Totals.Blocked)
	assert.Empty(t, result.Surfaces[0].Items)
	assert.Equal(t, int64(566), result.Totals.UnitsByMaterial["Clay Brick"])
}

func TestEstimateCatalogMissUsesOverride(t *testing.T) {
	p := testProject()
	p.Surfaces = p.Surfaces[:1]
	p.Surfaces[0].IsCurtainWall = true
	p.Surfaces[0].GlassThickness = "15mm"
	p.Surfaces[0].CostOverride = types.Some(1500)

	result, err := newTestEngine(1).Estimate(context.Background(), p)
	require.NoError(t, err)

	require.Len(t, result.BOQ.Items, 1)
	item := result.BOQ.Items[0]
	assert.True(t, item.Amount.Equal(decimal.NewFromInt(80*1500)))
	require.Len(t, item.Lineage.Assumptions, 1)
	assert.Contains(t, item.Lineage.Assumptions[0], "override")
}

func TestEstimateAssignsMissingIDs(t *testing.T) {
	p := testProject()
	p.Surfaces[1].ID = ""

	result, err := newTestEngine(1).Estimate(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "surface-2", result.Surfaces[1].Surface.ID)
}

func TestEstimateUnknownKind(t *testing.T) {
	p := testProject()
	p.Surfaces[1].Kind = "chimney"

	_, err := newTestEngine(1).Estimate(context.Background(), p)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestEstimateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine(1).Estimate(ctx, testProject())
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, context.Canceled))
}

func TestEstimateProjectOverrides(t *testing.T) {
	p := testProject()
	p.Currency = types.CurrencyUSD
	p.MarlaSize = types.MarlaSize252

	result, err := newTestEngine(1).Estimate(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, types.CurrencyUSD, result.BOQ.Currency)
	assert.Equal(t, types.Some(2520), result.PlotArea)
}

func TestEstimateNilProject(t *testing.T) {
	_, err := newTestEngine(1).Estimate(context.Background(), nil)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}
