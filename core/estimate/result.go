package estimate

import (
	"time"

	"github.com/shopspring/decimal"

	"buildcost/core/determinism"
	"buildcost/core/materials"
	"buildcost/core/surface"
	"buildcost/core/types"
)

// Result is the output of estimation
type Result struct {
	Project   *types.Project          `json:"project"`
	Surfaces  []*SurfaceResult        `json:"surfaces"`
	BOQ       *types.BillOfQuantities `json:"bill_of_quantities"`
	Totals    Totals                  `json:"totals"`
	PlotArea  types.Measure           `json:"plot_area"`
	InputHash string                  `json:"input_hash"`
	Metadata  Metadata                `json:"metadata"`
}

// SurfaceResult is one evaluated and priced surface
type SurfaceResult struct {
	surface.Quantities
	Items    []*types.LineItem `json:"line_items"`
	Cost     decimal.Decimal   `json:"cost"`
	CarbonKg float64           `json:"carbon_kg"`
}

// Totals are the project-wide sums
type Totals struct {
	// UnitsByMaterial counts bricks or blocks per catalog material
	UnitsByMaterial map[string]int64 `json:"units_by_material"`

	Consumption materials.Consumption `json:"consumption"`

	Area        float64 `json:"area"`
	NetArea     float64 `json:"net_area"`
	Volume      float64 `json:"volume"`
	TileArea    float64 `json:"tile_area"`
	PlasterArea float64 `json:"plaster_area"`

	Cost     decimal.Decimal `json:"cost"`
	CarbonKg float64         `json:"carbon_kg"`

	Surfaces   int `json:"surfaces"`
	Blocked    int `json:"blocked"`
	Violations int `json:"violations"`
}

func newTotals() Totals {
	return Totals{UnitsByMaterial: make(map[string]int64)}
}

func (t *Totals) add(sr *SurfaceResult) {
	q := sr.Quantities
	t.Surfaces++
	if q.Blocked() {
		t.Blocked++
	}
	t.Violations += len(q.Violations)

	t.Consumption = t.Consumption.Add(q.Consumption)
	if q.Masonry.NumUnits > 0 {
		for _, item := range q.Items {
			if item.Category == types.CategoryMasonry {
				t.UnitsByMaterial[item.Material] += q.Masonry.NumUnits
			}
		}
	}

	t.Area += q.Area.Or(0)
	t.NetArea += q.NetArea.Or(0)
	t.Volume += q.Volume.Or(0)
	t.TileArea += q.TileArea.Or(0)
	t.PlasterArea += q.PlasterArea.Or(0)
}

// Materials returns the brick and block materials used, sorted
func (t Totals) Materials() []string {
	return determinism.SortedKeys(t.UnitsByMaterial)
}

// Metadata describes how the estimate was produced
type Metadata struct {
	Currency    types.Currency  `json:"currency"`
	MarlaSize   types.MarlaSize `json:"marla_size"`
	Mix         materials.Mix   `json:"mix"`
	Rates       Rates           `json:"rates"`
	Workers     int             `json:"workers"`
	EstimatedAt time.Time       `json:"estimated_at"`
	Duration    time.Duration   `json:"duration_ns"`
}

// ViolationCount returns the number of violations across all surfaces
func (r *Result) ViolationCount() int {
	n := 0
	for _, s := range r.Surfaces {
		n += len(s.Violations)
	}
	return n
}

// Assumptions returns every assumption note, prefixed by surface
func (r *Result) Assumptions() []string {
	var out []string
	for _, s := range r.Surfaces {
		for _, a := range s.Assumptions {
			out = append(out, s.Surface.Label()+": "+a)
		}
	}
	return out
}

// HashProject computes a deterministic hash of the project input
func HashProject(p *types.Project) (string, error) {
	hash, err := determinism.HashJSON(p)
	if err != nil {
		return "", err
	}
	return hash.Hex(), nil
}
