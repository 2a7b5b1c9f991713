package output

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"buildcost/core/estimate"
)

// PDFFormatter writes a printable A4 report
type PDFFormatter struct {
	Version string
}

// Format returns the format type
func (f *PDFFormatter) Format() Format {
	return FormatPDF
}

// Render produces output for the given result
func (f *PDFFormatter) Render(w io.Writer, result *estimate.Result) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 10, 10)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("buildcost %s  |  page %d", f.Version, pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	currency := string(result.BOQ.Currency)

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(190, 10, tr("Estimate: "+result.Project.Name))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	summary := [][2]string{
		{"Total cost", currency + " " + FormatMoney(result.BOQ.TotalCost)},
		{"Embodied carbon", fmt.Sprintf("%.1f kgCO2e", result.BOQ.TotalCarbonKg)},
		{"Cement", FormatQuantity(result.Totals.Consumption.CementBags) + " bags"},
		{"Sand", FormatQuantity(result.Totals.Consumption.SandVolume) + " cu ft"},
	}
	if result.PlotArea.Valid {
		summary = append(summary, [2]string{"Plot area", result.PlotArea.String() + " sq ft"})
	}
	for _, name := range result.Totals.Materials() {
		summary = append(summary, [2]string{tr(name), fmt.Sprintf("%d units", result.Totals.UnitsByMaterial[name])})
	}
	for _, row := range summary {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(50, 7, row[0])
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(140, 7, row[1])
		pdf.Ln(7)
	}
	pdf.Ln(5)

	widths := []float64{62, 24, 22, 16, 30, 36}
	headers := []string{"Item", "Category", "Quantity", "Unit", "Rate", "Amount"}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, item := range result.BOQ.Items {
		pdf.CellFormat(widths[0], 7, tr(truncate(item.Label, 38)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, string(item.Category), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, item.Quantity.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, string(item.Unit), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 7, FormatMoney(item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 7, FormatMoney(item.Amount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3]+widths[4], 8, "Total ("+currency+")", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[5], 8, FormatMoney(result.BOQ.TotalCost), "1", 1, "R", false, 0, "")

	if result.ViolationCount() > 0 {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(190, 8, "Violations")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		for _, s := range result.Surfaces {
			for _, v := range s.Violations {
				pdf.MultiCell(190, 6, tr(fmt.Sprintf("%s: %s (%s)", s.Surface.Label(), v.Message, v.Code)), "", "L", false)
			}
		}
	}

	if notes := result.Assumptions(); len(notes) > 0 {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(190, 8, "Assumptions")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 9)
		for _, a := range notes {
			pdf.MultiCell(190, 5, tr("- "+a), "", "L", false)
		}
	}

	return pdf.Output(w)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
