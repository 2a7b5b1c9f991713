// Package catalog - Wall brick and block catalog
package catalog

import (
	"github.com/shopspring/decimal"

	"buildcost/core/types"
)

// RegisterBricks populates the brick/block catalog.
// Volumes are cubic feet per unit; costs are per unit.
func RegisterBricks(c *Catalog) {
	c.Register(MaterialSpec{
		Name:                       "Clay Brick",
		CostPerUnit:                decimal.NewFromInt(17),
		Unit:                       types.UnitPiece,
		VolumePerUnitWithMortar:    0.07063,
		VolumePerUnitWithoutMortar: 0.05448,
		CarbonPerUnit:              0.72,
		Notes:                      "9 x 4.5 x 3 in fired clay",
	})
	c.Register(MaterialSpec{
		Name:                       "Fly Ash Brick",
		CostPerUnit:                decimal.NewFromInt(14),
		Unit:                       types.UnitPiece,
		VolumePerUnitWithMortar:    0.07290,
		VolumePerUnitWithoutMortar: 0.05600,
		CarbonPerUnit:              0.25,
	})
	c.Register(MaterialSpec{
		Name:                       "Concrete Block 8in",
		CostPerUnit:                decimal.NewFromInt(75),
		Unit:                       types.UnitPiece,
		VolumePerUnitWithMortar:    0.59259,
		VolumePerUnitWithoutMortar: 0.52568,
		CarbonPerUnit:              9.0,
		Notes:                      "16 x 8 x 8 in nominal hollow block",
	})
	c.Register(MaterialSpec{
		Name:                       "Concrete Block 6in",
		CostPerUnit:                decimal.NewFromInt(62),
		Unit:                       types.UnitPiece,
		VolumePerUnitWithMortar:    0.44444,
		VolumePerUnitWithoutMortar: 0.38784,
		CarbonPerUnit:              7.0,
		Notes:                      "16 x 6 x 8 in nominal hollow block",
	})
	c.Register(MaterialSpec{
		Name:                       "AAC Block",
		CostPerUnit:                decimal.NewFromInt(240),
		Unit:                       types.UnitPiece,
		VolumePerUnitWithMortar:    0.66667,
		VolumePerUnitWithoutMortar: 0.63657,
		CarbonPerUnit:              8.5,
		Notes:                      "autoclaved aerated concrete, thin-bed joints",
	})
}
