package output

import (
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"buildcost/core/estimate"
)

const (
	sheetSummary   = "Summary"
	sheetSurfaces  = "Surfaces"
	sheetLineItems = "Line Items"
)

// XLSXFormatter writes an Excel workbook with summary, surface and line item sheets
type XLSXFormatter struct{}

// Format returns the format type
func (f *XLSXFormatter) Format() Format {
	return FormatXLSX
}

// Render produces output for the given result
func (f *XLSXFormatter) Render(w io.Writer, result *estimate.Result) (err error) {
	book := excelize.NewFile()
	defer func() {
		if cerr := book.Close(); err == nil {
			err = cerr
		}
	}()

	if err := book.SetSheetName("Sheet1", sheetSummary); err != nil {
		return err
	}
	bold, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	totals := result.Totals
	summary := [][]interface{}{
		{"Project", result.Project.Name},
		{"Currency", string(result.BOQ.Currency)},
		{"Total cost", result.BOQ.TotalCost.InexactFloat64()},
		{"Embodied carbon (kgCO2e)", result.BOQ.TotalCarbonKg},
		{"Plot area (sq ft)", result.PlotArea.Or(0)},
		{"Surfaces", totals.Surfaces},
		{"Violations", totals.Violations},
		{"Cement bags", totals.Consumption.CementBags},
		{"Sand (ft³)", totals.Consumption.SandVolume},
		{"Aggregate (ft³)", totals.Consumption.AggregateVolume},
	}
	for _, name := range totals.Materials() {
		summary = append(summary, []interface{}{name + " (units)", totals.UnitsByMaterial[name]})
	}
	summary = append(summary, []interface{}{"Input hash", result.InputHash})
	if err := writeRows(book, sheetSummary, summary); err != nil {
		return err
	}
	if err := book.SetCellStyle(sheetSummary, "A1", "A"+strconv.Itoa(len(summary)), bold); err != nil {
		return err
	}

	surfaces := [][]interface{}{
		{"ID", "Surface", "Kind", "Area (ft²)", "Net area (ft²)", "Volume (ft³)", "Bricks", "Cement bags", "Sand (ft³)", "Aggregate (ft³)", "Cost", "Carbon (kg)"},
	}
	for _, s := range result.Surfaces {
		c := s.Consumption
		surfaces = append(surfaces, []interface{}{
			s.Surface.ID, s.Surface.Label(), s.Variant,
			cell(s.Area.Get()), cell(s.NetArea.Get()), cell(s.Volume.Get()),
			c.NumUnits, c.CementBags, c.SandVolume, c.AggregateVolume,
			s.Cost.InexactFloat64(), s.CarbonKg,
		})
	}
	if err := addSheet(book, sheetSurfaces, surfaces, bold); err != nil {
		return err
	}

	items := [][]interface{}{
		{"ID", "Item", "Category", "Material", "Quantity", "Unit", "Rate", "Amount", "Carbon (kg)", "Formula"},
	}
	for _, item := range result.BOQ.Items {
		items = append(items, []interface{}{
			item.ID, item.Label, string(item.Category), item.Material,
			item.Quantity.InexactFloat64(), string(item.Unit),
			item.Rate.InexactFloat64(), item.Amount.InexactFloat64(),
			item.CarbonKg, item.Lineage.Formula,
		})
	}
	if err := addSheet(book, sheetLineItems, items, bold); err != nil {
		return err
	}

	book.SetActiveSheet(0)
	return book.Write(w)
}

func addSheet(book *excelize.File, name string, rows [][]interface{}, headerStyle int) error {
	if _, err := book.NewSheet(name); err != nil {
		return err
	}
	if err := writeRows(book, name, rows); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return book.SetCellStyle(name, "A1", last, headerStyle)
}

func writeRows(book *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		start, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := book.SetSheetRow(sheet, start, &row); err != nil {
			return err
		}
	}
	return nil
}

// cell leaves non-computable measures blank
func cell(v float64, ok bool) interface{} {
	if !ok {
		return nil
	}
	return v
}
