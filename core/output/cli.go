package output

import (
	"fmt"
	"io"

	"buildcost/core/estimate"
	"buildcost/core/types"
	"buildcost/core/ui"
)

// CLIFormatter renders tables for a terminal
type CLIFormatter struct {
	NoColor bool
	Verbose bool
}

// Format returns the format type
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render produces output for the given result
func (f *CLIFormatter) Render(w io.Writer, result *estimate.Result) error {
	out := ui.NewWriter(w, f.NoColor)
	if f.Verbose {
		out.SetVerbosity(2)
	}
	currency := result.BOQ.Currency

	summary := out.NewEstimateSummary()
	summary.Project = result.Project.Name
	summary.TotalCost = fmt.Sprintf("%s %s", currency, FormatMoney(result.BOQ.TotalCost))
	summary.CarbonKg = result.BOQ.TotalCarbonKg
	summary.PlotArea = result.PlotArea.String()
	summary.Surfaces = result.Totals.Surfaces
	summary.Violations = result.ViolationCount()
	summary.Notes = len(result.Assumptions())
	summary.Render()

	out.Header("Surfaces")
	surfaces := out.NewTable("Surface", "Kind", "Area ft²", "Volume ft³", "Bricks", "Cement bags", "Sand ft³", "Cost").
		AlignRight(2, 3, 4, 5, 6, 7)
	for _, s := range result.Surfaces {
		c := s.Consumption
		surfaces.AddRow(
			s.Surface.Label(),
			s.Variant,
			s.Area.String(),
			s.Volume.String(),
			units(c.NumUnits),
			FormatQuantity(c.CementBags),
			FormatQuantity(c.SandVolume),
			FormatMoney(s.Cost),
		)
	}
	surfaces.Render()

	out.Header("Materials")
	totals := result.Totals
	materials := out.NewTable("Material", "Quantity", "Unit").AlignRight(1)
	for _, name := range totals.Materials() {
		materials.AddRow(name, fmt.Sprintf("%d", totals.UnitsByMaterial[name]), string(types.UnitPiece))
	}
	materials.AddRow("Cement", FormatQuantity(totals.Consumption.CementBags), string(types.UnitBag))
	materials.AddRow("Sand", FormatQuantity(totals.Consumption.SandVolume), string(types.UnitCubicFoot))
	if totals.Consumption.AggregateVolume > 0 {
		materials.AddRow("Aggregate", FormatQuantity(totals.Consumption.AggregateVolume), string(types.UnitCubicFoot))
	}
	materials.Render()

	out.Header("Cost by category")
	categories := out.NewTable("Category", "Cost", "Carbon kg").AlignRight(1, 2)
	for _, c := range result.BOQ.Categories() {
		agg := result.BOQ.ByCategory[c]
		categories.AddRow(string(c), FormatMoney(agg.Cost), fmt.Sprintf("%.1f", agg.CarbonKg))
	}
	categories.AddRow("total", FormatMoney(result.BOQ.TotalCost), fmt.Sprintf("%.1f", result.BOQ.TotalCarbonKg))
	categories.Render()

	if n := result.ViolationCount(); n > 0 {
		out.Header("Violations")
		for _, s := range result.Surfaces {
			for _, v := range s.Violations {
				out.Error("%s: %s (%s)", s.Surface.Label(), v.Message, v.Code)
			}
		}
	}

	if notes := result.Assumptions(); len(notes) > 0 {
		out.Header("Assumptions")
		for _, a := range notes {
			out.Info("%s", a)
		}
	}

	out.Println("")
	out.Debug("input hash %s, %d workers, %s", result.InputHash, result.Metadata.Workers, result.Metadata.Duration)
	return nil
}

func units(n int64) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}
