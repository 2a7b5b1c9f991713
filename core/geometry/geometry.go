// Package geometry converts surface dimensions into areas and volumes.
//
// Every function treats missing, zero, negative or non-finite input as
// "not computable" and returns types.None instead of an error, so that a
// partially filled form renders blanks rather than zeros.
package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"buildcost/core/types"
	"buildcost/internal/errors"
)

// InchesPerFoot converts thickness (inches) into feet
const InchesPerFoot = 12.0

// Places is the rounding applied to every geometric result
const Places = 2

// ParseDimension turns a raw form field into a measure.
// Blank, non-numeric, non-finite and non-positive values are not computable.
func ParseDimension(raw string) types.Measure {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.None
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return types.None
	}
	return types.Some(v)
}

// ComputeArea returns length * heightOrWidth in square feet
func ComputeArea(length, heightOrWidth types.Measure) types.Measure {
	if !length.Positive() || !heightOrWidth.Positive() {
		return types.None
	}
	return types.Some(length.Value * heightOrWidth.Value).Round(Places)
}

// ComputeVolume returns area * (thicknessInches / 12) in cubic feet
func ComputeVolume(area, thicknessInches types.Measure) types.Measure {
	if !area.Positive() || !thicknessInches.Positive() {
		return types.None
	}
	return types.Some(area.Value * (thicknessInches.Value / InchesPerFoot)).Round(Places)
}

// ComputeTileArea returns tileHeight * length in square feet.
// A tile height above the wall height is a validation violation: no area
// is produced and the returned error carries CodeTileHeightExceedsWallHeight.
func ComputeTileArea(tileHeight, length, wallHeight types.Measure) (types.Measure, error) {
	if !tileHeight.Positive() || !length.Positive() || !wallHeight.Positive() {
		return types.None, nil
	}
	if tileHeight.Value > wallHeight.Value {
		return types.None, TileHeightExceeded(tileHeight.Value, wallHeight.Value)
	}
	return types.Some(tileHeight.Value * length.Value).Round(Places), nil
}

// TileHeightExceeded builds the tile height violation
func TileHeightExceeded(tileHeight, wallHeight float64) *errors.Error {
	return errors.Validation(errors.CodeTileHeightExceedsWallHeight,
		fmt.Sprintf("tile height %s ft exceeds wall height %s ft", format(tileHeight), format(wallHeight))).
		WithContext("tile_height", tileHeight).
		WithContext("wall_height", wallHeight)
}

// ComputePlotArea returns plotSizeInMarlas * marlaSize in square feet.
// Marla sizes other than 252 and 272 are not computable.
func ComputePlotArea(plotSizeInMarlas types.Measure, marlaSize types.MarlaSize) types.Measure {
	if !plotSizeInMarlas.Positive() || !marlaSize.IsValid() {
		return types.None
	}
	return types.Some(plotSizeInMarlas.Value * marlaSize.SquareFeet()).Round(Places)
}

// ComputeOpeningsArea sums width * height * count over all openings.
// Openings that are not fully dimensioned are skipped; with none left the
// result is not computable.
func ComputeOpeningsArea(openings []types.Opening) types.Measure {
	total := 0.0
	counted := 0
	for _, o := range openings {
		area := ComputeArea(o.Width, o.Height)
		if !area.Valid {
			continue
		}
		total += area.Value * float64(o.Quantity())
		counted++
	}
	if counted == 0 {
		return types.None
	}
	return types.Some(total).Round(Places)
}

// CheckOpenings reports a violation when doors and windows together
// are larger than the wall they are cut from.
func CheckOpenings(wallArea, openingsArea types.Measure) error {
	if !wallArea.Positive() || !openingsArea.Positive() {
		return nil
	}
	if openingsArea.Value > wallArea.Value {
		return errors.Validation(errors.CodeOpeningsExceedWallArea,
			fmt.Sprintf("doors and windows (%s sq ft) exceed wall area (%s sq ft)", format(openingsArea.Value), format(wallArea.Value))).
			WithContext("openings_area", openingsArea.Value).
			WithContext("wall_area", wallArea.Value)
	}
	return nil
}

// NetArea subtracts the openings from the wall area.
// Without openings the gross area is returned unchanged; openings larger
// than the wall leave nothing computable.
func NetArea(wallArea, openingsArea types.Measure) types.Measure {
	if !wallArea.Valid {
		return types.None
	}
	if !openingsArea.Positive() {
		return wallArea
	}
	if openingsArea.Value > wallArea.Value {
		return types.None
	}
	return types.Some(wallArea.Value - openingsArea.Value).Round(Places)
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
