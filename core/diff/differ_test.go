package diff

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"buildcost/core/estimate"
	"buildcost/core/project"
	"buildcost/core/types"
)

func wall(id string, length float64, material string) types.SurfaceInput {
	return types.SurfaceInput{
		ID:        id,
		Kind:      types.KindWall,
		Length:    types.Some(length),
		Height:    types.Some(8),
		Thickness: types.Some(9),
		Material:  material,
	}
}

func estimateOf(t *testing.T, surfaces ...types.SurfaceInput) *estimate.Result {
	t.Helper()
	engine := estimate.NewEngine(estimate.DefaultConfig(), estimate.WithLogger(zap.NewNop()))
	result, err := engine.Estimate(context.Background(), &types.Project{Name: "p", Surfaces: surfaces})
	require.NoError(t, err)
	return result
}

func TestDiffIdenticalEstimates(t *testing.T) {
	before := estimateOf(t, wall("w1", 10, "Clay Brick"))
	after := estimateOf(t, wall("w1", 10, "Clay Brick"))

	d := NewDiffer(0).Diff(before, after)

	assert.True(t, d.TotalDelta.IsZero())
	assert.Empty(t, d.Added)
	assert.Empty(t, d.Removed)
	assert.Empty(t, d.Changed)
	assert.Len(t, d.Unchanged, 1)
	assert.Equal(t, "No cost change\n", d.Summary())
}

func TestDiffAddedAndRemoved(t *testing.T) {
	before := estimateOf(t, wall("w1", 10, "Clay Brick"), wall("w2", 12, "Clay Brick"))
	after := estimateOf(t, wall("w1", 10, "Clay Brick"), wall("w3", 12, "Clay Brick"))

	d := NewDiffer(0).Diff(before, after)

	require.Len(t, d.Added, 1)
	require.Len(t, d.Removed, 1)
	assert.Equal(t, "w3", d.Added[0].SurfaceID)
	assert.Equal(t, "w2", d.Removed[0].SurfaceID)
	assert.True(t, d.Removed[0].Delta.Equal(d.Removed[0].Before.Neg()))
	assert.True(t, d.TotalDelta.IsZero(), "same wall under a new id")
}

func TestDiffLongerWallChangesQuantity(t *testing.T) {
	before := estimateOf(t, wall("w1", 10, "Clay Brick"))
	after := estimateOf(t, wall("w1", 15, "Clay Brick"))

	d := NewDiffer(0).Diff(before, after)

	require.Len(t, d.Changed, 1)
	changed := d.Changed[0]
	assert.Equal(t, ChangeModified, changed.ChangeType)
	assert.True(t, changed.Delta.IsPositive())
	assert.Greater(t, changed.CarbonDelta, 0.0)

	var masonry *ComponentDiff
	for _, c := range changed.ComponentDiffs {
		if c.Category == types.CategoryMasonry {
			masonry = c
		}
	}
	require.NotNil(t, masonry)
	assert.True(t, masonry.QuantityChanged)
	assert.False(t, masonry.RateChanged)
	assert.Contains(t, d.Summary(), "Cost increased by PKR")
}

func TestDiffMaterialSwapChangesRate(t *testing.T) {
	before := estimateOf(t, wall("w1", 10, "Clay Brick"))
	after := estimateOf(t, wall("w1", 10, "Fly Ash Brick"))

	d := NewDiffer(0).Diff(before, after)

	require.Len(t, d.Changed, 1)
	reasons := map[string]bool{}
	for _, r := range d.Changed[0].ChangeReasons {
		reasons[r.Category] = true
	}
	assert.True(t, reasons["rate"])
}

func TestDiffViolationIsAChange(t *testing.T) {
	ok := wall("w1", 10, "Clay Brick")
	bad := ok
	bad.IsTilesUsed = true
	bad.TileHeight = types.Some(9)

	d := NewDiffer(0).Diff(estimateOf(t, ok), estimateOf(t, bad))

	require.Len(t, d.Changed, 1)
	assert.Equal(t, "blocked by violation", d.Changed[0].ChangeReasons[0].What)
	assert.Equal(t, 1, d.ViolationsAfter)
}

func TestTopChangesOrdersByImpact(t *testing.T) {
	d := &DiffResult{
		Added:   []*SurfaceDiff{{SurfaceID: "a", Delta: decimal.NewFromInt(10)}},
		Removed: []*SurfaceDiff{{SurfaceID: "r", Delta: decimal.NewFromInt(-50)}},
		Changed: []*SurfaceDiff{{SurfaceID: "c", Delta: decimal.NewFromInt(20)}},
	}

	top := d.TopChanges(2)
	require.Len(t, top, 2)
	assert.Equal(t, "r", top[0].SurfaceID)
	assert.Equal(t, "c", top[1].SurfaceID)
	assert.Len(t, d.TopChanges(10), 3)
	assert.Empty(t, d.TopChanges(-1))
	assert.Empty(t, (&DiffResult{}).TopChanges(-1))
}

func TestDiffKeepsRepeatedIDs(t *testing.T) {
	before := estimateOf(t, wall("w1", 10, "Clay Brick"), wall("w1", 12, "Clay Brick"))
	after := estimateOf(t, wall("w1", 10, "Clay Brick"), wall("w1", 14, "Clay Brick"))

	d := NewDiffer(0).Diff(before, after)

	require.Len(t, d.Unchanged, 1)
	require.Len(t, d.Changed, 1)
	assert.Equal(t, "w1", d.Unchanged[0].SurfaceID)
	assert.Equal(t, "w1#2", d.Changed[0].SurfaceID)
	assert.Empty(t, d.Added)
	assert.Empty(t, d.Removed)
}

func TestDiffProjectFilesWithoutIDs(t *testing.T) {
	load := func(length int) *estimate.Result {
		t.Helper()
		src := fmt.Sprintf(`
name = "House"

surface "wall" "north" {
  length    = %d
  height    = 8
  thickness = 9
  material  = "Clay Brick"
}

surface "slab" "roof" {
  length    = 10
  width     = 10
  thickness = 5
}
`, length)
		path := filepath.Join(t.TempDir(), "house.hcl")
		require.NoError(t, os.WriteFile(path, []byte(src), 0644))
		p, err := project.Load(path)
		require.NoError(t, err)

		engine := estimate.NewEngine(estimate.DefaultConfig(), estimate.WithLogger(zap.NewNop()))
		result, err := engine.Estimate(context.Background(), p)
		require.NoError(t, err)
		return result
	}

	d := NewDiffer(0).Diff(load(10), load(12))

	assert.Empty(t, d.Added)
	assert.Empty(t, d.Removed)
	require.Len(t, d.Changed, 1)
	require.Len(t, d.Unchanged, 1)
	assert.Equal(t, "wall.north", d.Changed[0].SurfaceID)

	var quantity bool
	for _, r := range d.Changed[0].ChangeReasons {
		if r.Category == "quantity" && strings.HasPrefix(r.What, string(types.CategoryMasonry)) {
			quantity = true
		}
	}
	assert.True(t, quantity, "masonry quantity reason expected")
}
