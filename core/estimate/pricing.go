package estimate

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"buildcost/core/carbon"
	"buildcost/core/catalog"
	"buildcost/core/surface"
	"buildcost/core/types"
)

// MoneyPlaces is the rounding applied to quantities and amounts on the bill
const MoneyPlaces = 2

// price turns one surface's quantities into line items
func (e *Engine) price(q surface.Quantities, currency types.Currency, log *zap.Logger) *SurfaceResult {
	sr := &SurfaceResult{Quantities: q}
	lineage := func(formula string, notes ...string) types.Lineage {
		var assumptions []string
		for _, n := range notes {
			if n != "" {
				assumptions = append(assumptions, n)
			}
		}
		return types.Lineage{
			SurfaceID:   q.Surface.ID,
			SurfaceKind: q.Surface.Kind,
			Formula:     formula,
			Assumptions: assumptions,
		}
	}
	add := func(item *types.LineItem) {
		item.ID = fmt.Sprintf("%s/%02d-%s", q.Surface.ID, len(sr.Items)+1, item.Category)
		item.Currency = currency
		sr.Items = append(sr.Items, item)
		sr.Cost = sr.Cost.Add(item.Amount)
		sr.CarbonKg += item.CarbonKg
	}

	for _, mq := range q.Items {
		if !mq.Found {
			log.Debug("catalog miss",
				zap.String("surface", q.Surface.ID),
				zap.String("catalog", string(mq.Kind)),
				zap.String("material", mq.Material),
			)
		}
		rate, note := catalog.ResolveCost(mq.Spec, mq.Found, mq.Material, mq.Override)
		qty := decimal.NewFromFloat(mq.Quantity).Round(MoneyPlaces)
		add(&types.LineItem{
			Label:    fmt.Sprintf("%s (%s)", mq.Material, q.Surface.Label()),
			Category: mq.Category,
			Material: mq.Material,
			Unit:     mq.Unit,
			Quantity: qty,
			Rate:     rate,
			Amount:   qty.Mul(rate).Round(MoneyPlaces),
			CarbonKg: carbon.ForMaterial(mq.Spec, mq.Quantity),
			Lineage:  lineage(mq.Formula, note),
		})
	}

	c := q.Consumption
	bulk := []struct {
		category types.Category
		label    string
		unit     types.Unit
		qty      float64
		rate     decimal.Decimal
		carbon   float64
		formula  string
	}{
		{types.CategoryCement, "Cement", types.UnitBag, c.CementBags, e.config.Rates.CementBag,
			e.config.Carbon.Cement(c.CementBags), "cement volume / 1.25 ft³ per bag"},
		{types.CategorySand, "Sand", types.UnitCubicFoot, c.SandVolume, e.config.Rates.SandPerCubicFoot,
			e.config.Carbon.Sand(c.SandVolume), "dry mortar and concrete sand share"},
		{types.CategoryAggregate, "Aggregate", types.UnitCubicFoot, c.AggregateVolume, e.config.Rates.AggregatePerCubicFoot,
			e.config.Carbon.Aggregate(c.AggregateVolume), "dry concrete aggregate share"},
	}
	for _, b := range bulk {
		if !(b.qty > 0) {
			continue
		}
		qty := decimal.NewFromFloat(b.qty).Round(MoneyPlaces)
		add(&types.LineItem{
			Label:    fmt.Sprintf("%s (%s)", b.label, q.Surface.Label()),
			Category: b.category,
			Unit:     b.unit,
			Quantity: qty,
			Rate:     b.rate,
			Amount:   qty.Mul(b.rate).Round(MoneyPlaces),
			CarbonKg: b.carbon,
			Lineage:  lineage(b.formula),
		})
	}

	return sr
}
