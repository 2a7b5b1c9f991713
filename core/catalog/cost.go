package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"buildcost/core/types"
)

// ResolveCost picks the unit cost for a material selection.
// A user override always wins; a catalog miss without an override
// prices at zero and says so in the returned assumption.
func ResolveCost(spec MaterialSpec, found bool, name string, override types.Measure) (decimal.Decimal, string) {
	if override.Valid && override.Value >= 0 {
		if found {
			return decimal.NewFromFloat(override.Value), fmt.Sprintf("cost of %q overridden to %s per %s", name, decimal.NewFromFloat(override.Value), spec.Unit)
		}
		return decimal.NewFromFloat(override.Value), fmt.Sprintf("%q not in catalog, using override cost %s", name, decimal.NewFromFloat(override.Value))
	}
	if !found {
		return decimal.Zero, fmt.Sprintf("%q not in catalog and no override cost given, priced at zero", name)
	}
	return spec.CostPerUnit, ""
}
