// Package catalog - Exterior and interior finish catalogs
package catalog

import (
	"github.com/shopspring/decimal"

	"buildcost/core/types"
)

// RegisterExteriorFinishes populates the exterior finish catalog (per sq ft)
func RegisterExteriorFinishes(c *Catalog) {
	c.Register(MaterialSpec{Name: "Cement Plaster", CostPerUnit: decimal.NewFromInt(45), Unit: types.UnitSquareFoot, CarbonPerUnit: 1.2})
	c.Register(MaterialSpec{Name: "Weather Shield Paint", CostPerUnit: decimal.NewFromInt(38), Unit: types.UnitSquareFoot, CarbonPerUnit: 0.35})
	c.Register(MaterialSpec{Name: "Texture Coat", CostPerUnit: decimal.NewFromInt(65), Unit: types.UnitSquareFoot, CarbonPerUnit: 0.6})
	c.Register(MaterialSpec{Name: "Brick Tile Cladding", CostPerUnit: decimal.NewFromInt(260), Unit: types.UnitSquareFoot, CarbonPerUnit: 4.2})
	c.Register(MaterialSpec{Name: "Stone Cladding", CostPerUnit: decimal.NewFromInt(420), Unit: types.UnitSquareFoot, CarbonPerUnit: 6.5})
}

// RegisterInteriorFinishes populates the interior finish catalog (per sq ft).
// Tile entries double as the tile choices for tiled walls and tanks.
func RegisterInteriorFinishes(c *Catalog) {
	c.Register(MaterialSpec{Name: "Plaster and Emulsion Paint", CostPerUnit: decimal.NewFromInt(55), Unit: types.UnitSquareFoot, CarbonPerUnit: 1.3})
	c.Register(MaterialSpec{Name: "Wallpaper", CostPerUnit: decimal.NewFromInt(90), Unit: types.UnitSquareFoot, CarbonPerUnit: 0.9})
	c.Register(MaterialSpec{Name: "Gypsum Board", CostPerUnit: decimal.NewFromInt(140), Unit: types.UnitSquareFoot, CarbonPerUnit: 1.5})
	c.Register(MaterialSpec{Name: "Ceramic Tiles", CostPerUnit: decimal.NewFromInt(180), Unit: types.UnitSquareFoot, CarbonPerUnit: 2.4})
	c.Register(MaterialSpec{Name: "Porcelain Tiles", CostPerUnit: decimal.NewFromInt(280), Unit: types.UnitSquareFoot, CarbonPerUnit: 3.1})
	c.Register(MaterialSpec{Name: "Wood Paneling", CostPerUnit: decimal.NewFromInt(650), Unit: types.UnitSquareFoot, CarbonPerUnit: 2.0})
}

// DefaultTileMaterial is used when tiles are enabled without a choice
const DefaultTileMaterial = "Ceramic Tiles"
