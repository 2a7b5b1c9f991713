// Package catalog - Insulation and glazing catalogs
package catalog

import (
	"github.com/shopspring/decimal"

	"buildcost/core/types"
)

// RegisterInsulation populates the insulation catalog.
// Costs and carbon are per sq ft per inch of insulation thickness.
func RegisterInsulation(c *Catalog) {
	c.Register(MaterialSpec{Name: "EPS Board", CostPerUnit: decimal.NewFromInt(22), Unit: types.UnitSqFtInch, CarbonPerUnit: 0.28})
	c.Register(MaterialSpec{Name: "XPS Board", CostPerUnit: decimal.NewFromInt(38), Unit: types.UnitSqFtInch, CarbonPerUnit: 0.55})
	c.Register(MaterialSpec{Name: "Glass Wool", CostPerUnit: decimal.NewFromInt(18), Unit: types.UnitSqFtInch, CarbonPerUnit: 0.12})
	c.Register(MaterialSpec{Name: "Rock Wool", CostPerUnit: decimal.NewFromInt(26), Unit: types.UnitSqFtInch, CarbonPerUnit: 0.16})
	c.Register(MaterialSpec{Name: "Polyurethane Foam", CostPerUnit: decimal.NewFromInt(55), Unit: types.UnitSqFtInch, CarbonPerUnit: 0.62})
}

// RegisterGlazing populates the curtain wall glass catalog, keyed by thickness
func RegisterGlazing(c *Catalog) {
	c.Register(MaterialSpec{Name: "6mm", CostPerUnit: decimal.NewFromInt(650), Unit: types.UnitSquareFoot, CarbonPerUnit: 1.7})
	c.Register(MaterialSpec{Name: "8mm", CostPerUnit: decimal.NewFromInt(820), Unit: types.UnitSquareFoot, CarbonPerUnit: 2.3})
	c.Register(MaterialSpec{Name: "10mm", CostPerUnit: decimal.NewFromInt(1050), Unit: types.UnitSquareFoot, CarbonPerUnit: 2.8})
	c.Register(MaterialSpec{Name: "12mm", CostPerUnit: decimal.NewFromInt(1300), Unit: types.UnitSquareFoot, CarbonPerUnit: 3.4})
}
