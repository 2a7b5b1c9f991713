// Package types - Bill of quantities types
package types

import (
	"github.com/shopspring/decimal"

	"buildcost/core/determinism"
)

// Currency represents a currency code
type Currency string

const (
	CurrencyPKR Currency = "PKR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Category groups line items by the kind of material bought
type Category string

const (
	CategoryMasonry    Category = "masonry"
	CategoryCement     Category = "cement"
	CategorySand       Category = "sand"
	CategoryAggregate  Category = "aggregate"
	CategoryGlazing    Category = "glazing"
	CategoryInsulation Category = "insulation"
	CategoryTiles      Category = "tiles"
	CategoryFinish     Category = "finish"
)

// LineItem is a single priced quantity in the bill of quantities
type LineItem struct {
	// ID uniquely identifies this line item
	ID string `json:"id"`

	// Label is a human-readable label
	Label string `json:"label"`

	// Category is the material category
	Category Category `json:"category"`

	// Material is the catalog name, when the item comes from a catalog
	Material string `json:"material,omitempty"`

	// Unit is the billing unit
	Unit Unit `json:"unit"`

	// Quantity is the number of units
	Quantity decimal.Decimal `json:"quantity"`

	// Rate is the unit price
	Rate decimal.Decimal `json:"rate"`

	// Amount is Quantity * Rate, rounded to cents
	Amount decimal.Decimal `json:"amount"`

	// Currency is the cost currency
	Currency Currency `json:"currency"`

	// CarbonKg is the embodied carbon of the quantity in kgCO2e
	CarbonKg float64 `json:"carbon_kg"`

	// Lineage tracks why this item exists
	Lineage Lineage `json:"lineage"`
}

// Lineage tracks the origin and calculation of a line item
type Lineage struct {
	// SurfaceID links to the source surface
	SurfaceID string `json:"surface_id"`

	// SurfaceKind is the kind of the source surface
	SurfaceKind SurfaceKind `json:"surface_kind"`

	// Formula describes how the quantity was calculated
	Formula string `json:"formula"`

	// Assumptions lists assumptions made during calculation
	Assumptions []string `json:"assumptions,omitempty"`
}

// Aggregate groups line items by a dimension
type Aggregate struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Items    []*LineItem     `json:"items,omitempty"`
	Cost     decimal.Decimal `json:"cost"`
	CarbonKg float64         `json:"carbon_kg"`
	Currency Currency        `json:"currency"`
}

// Add adds a line item to the aggregate
func (a *Aggregate) Add(item *LineItem) {
	a.Items = append(a.Items, item)
	a.Cost = a.Cost.Add(item.Amount)
	a.CarbonKg += item.CarbonKg
}

// BillOfQuantities is the complete priced material list of a project
type BillOfQuantities struct {
	// Items holds every line item in insertion order
	Items []*LineItem `json:"items"`

	// BySurface groups items by surface ID
	BySurface map[string]*Aggregate `json:"by_surface"`

	// ByKind groups items by surface kind
	ByKind map[SurfaceKind]*Aggregate `json:"by_kind"`

	// ByCategory groups items by material category
	ByCategory map[Category]*Aggregate `json:"by_category"`

	// ByMaterial groups catalog items by material name
	ByMaterial map[string]*Aggregate `json:"by_material"`

	// TotalCost is the overall cost
	TotalCost decimal.Decimal `json:"total_cost"`

	// TotalCarbonKg is the overall embodied carbon
	TotalCarbonKg float64 `json:"total_carbon_kg"`

	// Currency is the bill currency
	Currency Currency `json:"currency"`
}

// NewBillOfQuantities creates an empty bill
func NewBillOfQuantities(currency Currency) *BillOfQuantities {
	return &BillOfQuantities{
		BySurface:  make(map[string]*Aggregate),
		ByKind:     make(map[SurfaceKind]*Aggregate),
		ByCategory: make(map[Category]*Aggregate),
		ByMaterial: make(map[string]*Aggregate),
		Currency:   currency,
	}
}

// AddLineItem adds an item to the bill with proper indexing
func (b *BillOfQuantities) AddLineItem(item *LineItem) {
	b.Items = append(b.Items, item)

	b.aggregate(b.BySurface, item.Lineage.SurfaceID).Add(item)
	kind := item.Lineage.SurfaceKind
	if _, ok := b.ByKind[kind]; !ok {
		b.ByKind[kind] = &Aggregate{ID: string(kind), Label: string(kind), Currency: b.Currency}
	}
	b.ByKind[kind].Add(item)

	if _, ok := b.ByCategory[item.Category]; !ok {
		b.ByCategory[item.Category] = &Aggregate{ID: string(item.Category), Label: string(item.Category), Currency: b.Currency}
	}
	b.ByCategory[item.Category].Add(item)

	if item.Material != "" {
		b.aggregate(b.ByMaterial, item.Material).Add(item)
	}

	b.TotalCost = b.TotalCost.Add(item.Amount)
	b.TotalCarbonKg += item.CarbonKg
}

func (b *BillOfQuantities) aggregate(index map[string]*Aggregate, key string) *Aggregate {
	agg, ok := index[key]
	if !ok {
		agg = &Aggregate{ID: key, Label: key, Currency: b.Currency}
		index[key] = agg
	}
	return agg
}

// Categories returns the categories present, sorted by name
func (b *BillOfQuantities) Categories() []Category {
	return determinism.SortedKeys(b.ByCategory)
}

// Materials returns the material names present, sorted
func (b *BillOfQuantities) Materials() []string {
	return determinism.SortedKeys(b.ByMaterial)
}
