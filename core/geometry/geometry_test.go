package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildcost/core/types"
	"buildcost/internal/errors"
)

func TestComputeAreaRoundsToTwoPlaces(t *testing.T) {
	tests := []struct {
		length, height float64
		want           float64
	}{
		{10, 8, 80},
		{12.25, 9.5, 116.38},
		{0.333, 3, 1},
		{7.123, 1.001, 7.13},
	}

	for _, tt := range tests {
		got := ComputeArea(types.Some(tt.length), types.Some(tt.height))
		require.True(t, got.Valid)
		assert.Equal(t, types.Round(tt.length*tt.height, 2), got.Value)
		assert.Equal(t, tt.want, got.Value)
	}
}

func TestComputeVolume(t *testing.T) {
	got := ComputeVolume(types.Some(80), types.Some(6))
	require.True(t, got.Valid)
	assert.Equal(t, 40.0, got.Value)

	got = ComputeVolume(types.Some(33.33), types.Some(4.5))
	assert.Equal(t, types.Round(33.33*(4.5/12), 2), got.Value)
}

func TestRoundTripWallVolume(t *testing.T) {
	area := ComputeArea(types.Some(10), types.Some(8))
	volume := ComputeVolume(area, types.Some(6))

	assert.Equal(t, types.Some(80), area)
	assert.Equal(t, types.Some(40), volume)
}

func TestIncompleteInputIsNotComputable(t *testing.T) {
	missing := []struct {
		name string
		a, b types.Measure
	}{
		{"both missing", types.None, types.None},
		{"first missing", types.None, types.Some(8)},
		{"second missing", types.Some(10), types.None},
		{"zero", types.Some(0), types.Some(8)},
		{"negative", types.Some(10), types.Some(-2)},
		{"nan", types.Measure{Value: math.NaN(), Valid: true}, types.Some(8)},
		{"infinite", types.Some(10), types.Measure{Value: math.Inf(1), Valid: true}},
	}

	for _, tt := range missing {
		t.Run(tt.name, func(t *testing.T) {
			area := ComputeArea(tt.a, tt.b)
			assert.False(t, area.Valid)
			assert.Equal(t, types.None, area, "must be empty, not zero")

			assert.False(t, ComputeVolume(tt.a, tt.b).Valid)
		})
	}
}

func TestParseDimension(t *testing.T) {
	assert.Equal(t, types.Some(10), ParseDimension("10"))
	assert.Equal(t, types.Some(8.5), ParseDimension(" 8.5 "))
	for _, raw := range []string{"", "   ", "abc", "0", "-3", "NaN", "Inf", "1e400"} {
		assert.False(t, ParseDimension(raw).Valid, "input %q", raw)
	}
}

func TestIdempotent(t *testing.T) {
	first := ComputeVolume(ComputeArea(types.Some(14.7), types.Some(9.3)), types.Some(9))
	second := ComputeVolume(ComputeArea(types.Some(14.7), types.Some(9.3)), types.Some(9))
	assert.Equal(t, first, second)
}

func TestComputeTileArea(t *testing.T) {
	area, err := ComputeTileArea(types.Some(4), types.Some(10), types.Some(8))
	require.NoError(t, err)
	assert.Equal(t, types.Some(40), area)

	area, err = ComputeTileArea(types.Some(8), types.Some(10), types.Some(8))
	require.NoError(t, err, "tile height equal to wall height is allowed")
	assert.Equal(t, types.Some(80), area)
}

func TestComputeTileAreaExceedsWallHeight(t *testing.T) {
	area, err := ComputeTileArea(types.Some(9), types.Some(10), types.Some(8))

	assert.False(t, area.Valid, "no area on violation")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeTileHeightExceedsWallHeight))
	assert.True(t, errors.IsType(err, errors.TypeValidation))
}

func TestComputeTileAreaIncomplete(t *testing.T) {
	area, err := ComputeTileArea(types.Some(9), types.Some(10), types.None)
	assert.NoError(t, err)
	assert.False(t, area.Valid)

	area, err = ComputeTileArea(types.None, types.Some(10), types.Some(8))
	assert.NoError(t, err)
	assert.False(t, area.Valid)
}

func TestComputePlotArea(t *testing.T) {
	assert.Equal(t, types.Some(2720), ComputePlotArea(types.Some(10), types.MarlaSize272))
	assert.Equal(t, types.Some(1260), ComputePlotArea(types.Some(5), types.MarlaSize252))
	assert.False(t, ComputePlotArea(types.Some(10), types.MarlaSize(225)).Valid)
	assert.False(t, ComputePlotArea(types.None, types.MarlaSize272).Valid)
}

func TestOpenings(t *testing.T) {
	openings := []types.Opening{
		{Kind: "door", Width: types.Some(3), Height: types.Some(7)},
		{Kind: "window", Width: types.Some(4), Height: types.Some(4), Count: 2},
		{Kind: "window", Width: types.Some(4)},
	}

	total := ComputeOpeningsArea(openings)
	assert.Equal(t, types.Some(53), total)

	assert.NoError(t, CheckOpenings(types.Some(80), total))
	assert.Equal(t, types.Some(27), NetArea(types.Some(80), total))

	err := CheckOpenings(types.Some(40), total)
	assert.True(t, errors.HasCode(err, errors.CodeOpeningsExceedWallArea))
	assert.False(t, NetArea(types.Some(40), total).Valid)

	assert.False(t, ComputeOpeningsArea(nil).Valid)
	assert.Equal(t, types.Some(80), NetArea(types.Some(80), types.None))
}
