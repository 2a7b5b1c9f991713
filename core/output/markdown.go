package output

import (
	"fmt"
	"io"
	"strings"

	"buildcost/core/estimate"
)

// MarkdownFormatter writes a markdown report
type MarkdownFormatter struct{}

// Format returns the format type
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render produces output for the given result
func (f *MarkdownFormatter) Render(w io.Writer, result *estimate.Result) error {
	var b strings.Builder
	currency := result.BOQ.Currency

	fmt.Fprintf(&b, "# Estimate: %s\n\n", result.Project.Name)
	fmt.Fprintf(&b, "**Total cost:** %s %s  \n", currency, FormatMoney(result.BOQ.TotalCost))
	fmt.Fprintf(&b, "**Embodied carbon:** %.1f kgCO2e  \n", result.BOQ.TotalCarbonKg)
	if result.PlotArea.Valid {
		fmt.Fprintf(&b, "**Plot area:** %s sq ft (%d sq ft per marla)  \n", result.PlotArea, result.Metadata.MarlaSize)
	}
	b.WriteString("\n## Surfaces\n\n")
	b.WriteString("| Surface | Kind | Area (ft²) | Volume (ft³) | Bricks | Cement bags | Sand (ft³) | Cost |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|---:|---:|\n")
	for _, s := range result.Surfaces {
		c := s.Consumption
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			escape(s.Surface.Label()), s.Variant, s.Area, s.Volume, units(c.NumUnits),
			FormatQuantity(c.CementBags), FormatQuantity(c.SandVolume), FormatMoney(s.Cost))
	}

	b.WriteString("\n## Bill of quantities\n\n")
	b.WriteString("| Item | Category | Quantity | Unit | Rate | Amount |\n")
	b.WriteString("|---|---|---:|---|---:|---:|\n")
	for _, item := range result.BOQ.Items {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			escape(item.Label), item.Category, item.Quantity.StringFixed(2), item.Unit,
			FormatMoney(item.Rate), FormatMoney(item.Amount))
	}
	fmt.Fprintf(&b, "| **Total** | | | | | **%s** |\n", FormatMoney(result.BOQ.TotalCost))

	if result.ViolationCount() > 0 {
		b.WriteString("\n## Violations\n\n")
		for _, s := range result.Surfaces {
			for _, v := range s.Violations {
				fmt.Fprintf(&b, "- **%s** `%s`: %s\n", escape(s.Surface.Label()), v.Code, v.Message)
			}
		}
	}

	if notes := result.Assumptions(); len(notes) > 0 {
		b.WriteString("\n## Assumptions\n\n")
		for _, a := range notes {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}

	fmt.Fprintf(&b, "\n<sub>input hash `%s`</sub>\n", result.InputHash)
	_, err := io.WriteString(w, b.String())
	return err
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
