// Package diff provides surface-level estimate diffing.
// Compares two estimation results surface by surface.
package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"buildcost/core/determinism"
	"buildcost/core/estimate"
	"buildcost/core/types"
)

// DiffResult is the complete diff between two estimation results
type DiffResult struct {
	// Overall summary
	TotalBefore  decimal.Decimal `json:"total_before"`
	TotalAfter   decimal.Decimal `json:"total_after"`
	TotalDelta   decimal.Decimal `json:"total_delta"`
	DeltaPercent float64         `json:"delta_percent"`
	Currency     types.Currency  `json:"currency"`

	CarbonBefore float64 `json:"carbon_before_kg"`
	CarbonAfter  float64 `json:"carbon_after_kg"`
	CarbonDelta  float64 `json:"carbon_delta_kg"`

	// Surface-level changes
	Added     []*SurfaceDiff `json:"added"`
	Removed   []*SurfaceDiff `json:"removed"`
	Changed   []*SurfaceDiff `json:"changed"`
	Unchanged []*SurfaceDiff `json:"unchanged"`

	// Violations present on either side
	ViolationsBefore int `json:"violations_before"`
	ViolationsAfter  int `json:"violations_after"`
}

// SurfaceDiff describes changes to a single surface
type SurfaceDiff struct {
	SurfaceID string            `json:"surface_id"`
	Label     string            `json:"label"`
	Kind      types.SurfaceKind `json:"kind"`

	ChangeType ChangeType `json:"change_type"`

	Before      decimal.Decimal `json:"before"`
	After       decimal.Decimal `json:"after"`
	Delta       decimal.Decimal `json:"delta"`
	CarbonDelta float64         `json:"carbon_delta_kg"`

	// Category-level changes
	ComponentDiffs []*ComponentDiff `json:"components,omitempty"`

	// What drove the change
	ChangeReasons []ChangeReason `json:"reasons,omitempty"`
}

// ChangeType indicates the type of change
type ChangeType int

const (
	ChangeAdded     ChangeType = iota // New surface
	ChangeRemoved                     // Surface removed
	ChangeModified                    // Surface cost changed
	ChangeUnchanged                   // No cost change
)

// String returns the change type name
func (c ChangeType) String() string {
	switch c {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	case ChangeUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// MarshalText encodes the change type by name
func (c ChangeType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ComponentDiff describes changes to one material category of a surface
type ComponentDiff struct {
	Category   types.Category `json:"category"`
	ChangeType ChangeType     `json:"change_type"`

	BeforeQuantity decimal.Decimal `json:"before_quantity"`
	AfterQuantity  decimal.Decimal `json:"after_quantity"`
	BeforeAmount   decimal.Decimal `json:"before_amount"`
	AfterAmount    decimal.Decimal `json:"after_amount"`
	Delta          decimal.Decimal `json:"delta"`

	QuantityChanged bool `json:"quantity_changed"`
	RateChanged     bool `json:"rate_changed"`
}

// ChangeReason explains why a cost changed
type ChangeReason struct {
	Category string          `json:"category"` // "quantity", "rate", "material", "violation"
	What     string          `json:"what"`
	Impact   decimal.Decimal `json:"impact"`
}

// Differ computes diffs between estimation results
type Differ struct {
	// Threshold for "unchanged" (e.g., 0.01 = 1%)
	ChangeThreshold float64
}

// NewDiffer creates a new differ
func NewDiffer(changeThreshold float64) *Differ {
	if changeThreshold <= 0 {
		changeThreshold = 0.001 // 0.1% default
	}
	return &Differ{ChangeThreshold: changeThreshold}
}

// Diff computes the diff between before and after.
// Surfaces are matched by ID.
func (d *Differ) Diff(before, after *estimate.Result) *DiffResult {
	result := &DiffResult{
		TotalBefore:      before.BOQ.TotalCost,
		TotalAfter:       after.BOQ.TotalCost,
		TotalDelta:       after.BOQ.TotalCost.Sub(before.BOQ.TotalCost),
		Currency:         after.BOQ.Currency,
		CarbonBefore:     before.BOQ.TotalCarbonKg,
		CarbonAfter:      after.BOQ.TotalCarbonKg,
		CarbonDelta:      after.BOQ.TotalCarbonKg - before.BOQ.TotalCarbonKg,
		Added:            []*SurfaceDiff{},
		Removed:          []*SurfaceDiff{},
		Changed:          []*SurfaceDiff{},
		Unchanged:        []*SurfaceDiff{},
		ViolationsBefore: before.ViolationCount(),
		ViolationsAfter:  after.ViolationCount(),
	}
	if !before.BOQ.TotalCost.IsZero() {
		result.DeltaPercent = result.TotalDelta.Div(before.BOQ.TotalCost).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	beforeMap := index(before)
	afterMap := index(after)

	for _, id := range determinism.SortedKeys(afterMap) {
		afterSurface := afterMap[id]
		beforeSurface, existed := beforeMap[id]
		if !existed {
			added := d.createSurfaceDiff(nil, afterSurface, ChangeAdded)
			added.SurfaceID = id
			result.Added = append(result.Added, added)
			continue
		}
		diff := d.compareSurfaces(beforeSurface, afterSurface)
		diff.SurfaceID = id
		if diff.ChangeType == ChangeModified {
			result.Changed = append(result.Changed, diff)
		} else {
			result.Unchanged = append(result.Unchanged, diff)
		}
	}

	for _, id := range determinism.SortedKeys(beforeMap) {
		if _, exists := afterMap[id]; !exists {
			removed := d.createSurfaceDiff(beforeMap[id], nil, ChangeRemoved)
			removed.SurfaceID = id
			result.Removed = append(result.Removed, removed)
		}
	}

	return result
}

// index keys surfaces by id. A repeated id keeps every surface: the
// second occurrence is keyed "<id>#2", the third "<id>#3", in input order.
func index(r *estimate.Result) map[string]*estimate.SurfaceResult {
	out := make(map[string]*estimate.SurfaceResult, len(r.Surfaces))
	seen := make(map[string]int, len(r.Surfaces))
	for _, s := range r.Surfaces {
		id := s.Surface.ID
		seen[id]++
		if n := seen[id]; n > 1 {
			id = fmt.Sprintf("%s#%d", id, n)
		}
		out[id] = s
	}
	return out
}

func (d *Differ) createSurfaceDiff(before, after *estimate.SurfaceResult, changeType ChangeType) *SurfaceDiff {
	diff := &SurfaceDiff{ChangeType: changeType}

	switch changeType {
	case ChangeAdded:
		diff.identify(after)
		diff.After = after.Cost
		diff.Delta = after.Cost
		diff.CarbonDelta = after.CarbonKg
		diff.ChangeReasons = append(diff.ChangeReasons, ChangeReason{
			Category: "quantity",
			What:     "new surface",
			Impact:   after.Cost,
		})

	case ChangeRemoved:
		diff.identify(before)
		diff.Before = before.Cost
		diff.Delta = before.Cost.Neg()
		diff.CarbonDelta = -before.CarbonKg
		diff.ChangeReasons = append(diff.ChangeReasons, ChangeReason{
			Category: "quantity",
			What:     "surface removed",
			Impact:   diff.Delta,
		})
	}

	return diff
}

func (s *SurfaceDiff) identify(sr *estimate.SurfaceResult) {
	s.SurfaceID = sr.Surface.ID
	s.Label = sr.Surface.Label()
	s.Kind = sr.Surface.Kind
}

func (d *Differ) compareSurfaces(before, after *estimate.SurfaceResult) *SurfaceDiff {
	diff := &SurfaceDiff{
		Before:      before.Cost,
		After:       after.Cost,
		Delta:       after.Cost.Sub(before.Cost),
		CarbonDelta: after.CarbonKg - before.CarbonKg,
	}
	diff.identify(after)

	if before.Blocked() != after.Blocked() {
		what := "violation resolved"
		if after.Blocked() {
			what = "blocked by violation"
		}
		diff.ChangeReasons = append(diff.ChangeReasons, ChangeReason{
			Category: "violation",
			What:     what,
			Impact:   diff.Delta,
		})
	}

	if !d.significant(before.Cost, after.Cost) && len(diff.ChangeReasons) == 0 {
		diff.ChangeType = ChangeUnchanged
		return diff
	}
	diff.ChangeType = ChangeModified

	beforeComponents := components(before.Items)
	afterComponents := components(after.Items)

	for _, cat := range determinism.SortedKeys(afterComponents) {
		a := afterComponents[cat]
		b, existed := beforeComponents[cat]

		comp := &ComponentDiff{
			Category:      cat,
			AfterQuantity: a.quantity,
			AfterAmount:   a.amount,
		}
		if !existed {
			comp.ChangeType = ChangeAdded
			comp.Delta = a.amount
			diff.ChangeReasons = append(diff.ChangeReasons, ChangeReason{
				Category: "material",
				What:     "new component: " + string(cat),
				Impact:   a.amount,
			})
			diff.ComponentDiffs = append(diff.ComponentDiffs, comp)
			continue
		}

		comp.BeforeQuantity = b.quantity
		comp.BeforeAmount = b.amount
		comp.Delta = a.amount.Sub(b.amount)
		if comp.Delta.IsZero() && a.quantity.Equal(b.quantity) {
			comp.ChangeType = ChangeUnchanged
			diff.ComponentDiffs = append(diff.ComponentDiffs, comp)
			continue
		}

		comp.ChangeType = ChangeModified
		if !a.quantity.Equal(b.quantity) {
			comp.QuantityChanged = true
			diff.ChangeReasons = append(diff.ChangeReasons, ChangeReason{
				Category: "quantity",
				What:     fmt.Sprintf("%s quantity %s → %s", cat, b.quantity.StringFixed(2), a.quantity.StringFixed(2)),
				Impact:   comp.Delta,
			})
		}
		if a.rate() != b.rate() {
			comp.RateChanged = true
			diff.ChangeReasons = append(diff.ChangeReasons, ChangeReason{
				Category: "rate",
				What:     string(cat) + " rate changed",
				Impact:   comp.Delta,
			})
		}
		diff.ComponentDiffs = append(diff.ComponentDiffs, comp)
	}

	// Check for removed components
	for _, cat := range determinism.SortedKeys(beforeComponents) {
		if _, found := afterComponents[cat]; found {
			continue
		}
		b := beforeComponents[cat]
		comp := &ComponentDiff{
			Category:       cat,
			ChangeType:     ChangeRemoved,
			BeforeQuantity: b.quantity,
			BeforeAmount:   b.amount,
			Delta:          b.amount.Neg(),
		}
		diff.ComponentDiffs = append(diff.ComponentDiffs, comp)
		diff.ChangeReasons = append(diff.ChangeReasons, ChangeReason{
			Category: "material",
			What:     "component removed: " + string(cat),
			Impact:   comp.Delta,
		})
	}

	return diff
}

// significant reports whether the relative change exceeds the threshold
func (d *Differ) significant(before, after decimal.Decimal) bool {
	if before.IsZero() {
		return !after.IsZero()
	}
	change := after.Sub(before).Div(before).Abs().InexactFloat64()
	return change > d.ChangeThreshold
}

type component struct {
	quantity decimal.Decimal
	amount   decimal.Decimal
	rates    []string
}

// rate identifies the set of unit prices used by the component
func (c *component) rate() string {
	return strings.Join(c.rates, ",")
}

func components(items []*types.LineItem) map[types.Category]*component {
	out := make(map[types.Category]*component)
	for _, item := range items {
		c, ok := out[item.Category]
		if !ok {
			c = &component{}
			out[item.Category] = c
		}
		c.quantity = c.quantity.Add(item.Quantity)
		c.amount = c.amount.Add(item.Amount)
		c.rates = append(c.rates, item.Rate.String())
	}
	return out
}

// Summary provides a human-readable summary
func (r *DiffResult) Summary() string {
	var b strings.Builder

	// Overall change
	switch {
	case r.TotalDelta.IsZero():
		b.WriteString("No cost change\n")
	case r.TotalDelta.IsNegative():
		fmt.Fprintf(&b, "Cost decreased by %s %s (%.1f%%)\n", r.Currency, r.TotalDelta.Abs().StringFixed(2), r.DeltaPercent)
	default:
		fmt.Fprintf(&b, "Cost increased by %s %s (+%.1f%%)\n", r.Currency, r.TotalDelta.StringFixed(2), r.DeltaPercent)
	}

	// Surface changes
	if n := len(r.Added); n > 0 {
		fmt.Fprintf(&b, "  + %d surfaces added\n", n)
	}
	if n := len(r.Removed); n > 0 {
		fmt.Fprintf(&b, "  - %d surfaces removed\n", n)
	}
	if n := len(r.Changed); n > 0 {
		fmt.Fprintf(&b, "  ~ %d surfaces changed\n", n)
	}
	if r.CarbonDelta != 0 {
		fmt.Fprintf(&b, "  carbon %+.1f kgCO2e\n", r.CarbonDelta)
	}

	return b.String()
}

// TopChanges returns the surfaces with largest cost impact
func (r *DiffResult) TopChanges(n int) []*SurfaceDiff {
	all := make([]*SurfaceDiff, 0, len(r.Added)+len(r.Removed)+len(r.Changed))
	all = append(all, r.Added...)
	all = append(all, r.Removed...)
	all = append(all, r.Changed...)

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Delta.Abs().GreaterThan(all[j].Delta.Abs())
	})

	n = max(0, min(n, len(all)))
	return all[:n]
}
