package carbon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildcost/core/catalog"
	"buildcost/core/materials"
)

func TestForConsumption(t *testing.T) {
	c := materials.Consumption{CementBags: 2, SandVolume: 10, AggregateVolume: 5}

	want := 2*46.5 + 10*0.23 + 5*0.32
	assert.InDelta(t, want, DefaultFactors().ForConsumption(c), 1e-9)
	assert.Zero(t, DefaultFactors().ForConsumption(materials.Consumption{}))
}

func TestForConsumptionIgnoresUnits(t *testing.T) {
	assert.Zero(t, DefaultFactors().ForConsumption(materials.Consumption{NumUnits: 500}))
}

func TestForMaterial(t *testing.T) {
	clay, ok := catalog.Builtin().Find(catalog.KindBrick, "Clay Brick")
	require.True(t, ok)

	assert.InDelta(t, 566*0.72, ForMaterial(clay, 566), 1e-9)
	assert.Zero(t, ForMaterial(clay, -1))
	assert.Zero(t, ForMaterial(clay, math.NaN()))
	assert.Zero(t, ForMaterial(catalog.MaterialSpec{}, 100))
}

func TestCustomFactors(t *testing.T) {
	f := Factors{CementPerBag: 40}
	assert.InDelta(t, 80.0, f.ForConsumption(materials.Consumption{CementBags: 2, SandVolume: 3}), 1e-9)
	assert.Zero(t, f.Cement(math.Inf(1)))
}
