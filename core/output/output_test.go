package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"buildcost/core/estimate"
	"buildcost/core/types"
	"buildcost/internal/errors"
)

func testResult(t *testing.T) *estimate.Result {
	t.Helper()
	project := &types.Project{
		Name:           "Corner | House",
		PlotSizeMarlas: types.Some(5),
		Surfaces: []types.SurfaceInput{
			{ID: "w1", Name: "north", Kind: types.KindWall, Length: types.Some(10), Height: types.Some(8), Thickness: types.Some(6), Material: "Clay Brick", PlasterFaces: 1},
			{ID: "w2", Name: "bath", Kind: types.KindWall, Length: types.Some(10), Height: types.Some(8), Thickness: types.Some(6), Material: "Clay Brick", IsTilesUsed: true, TileHeight: types.Some(9)},
			{ID: "s1", Name: "roof", Kind: types.KindRoof, Length: types.Some(10), Width: types.Some(10), Thickness: types.Some(5)},
			{ID: "w3", Name: "mud", Kind: types.KindWall, Length: types.Some(5), Height: types.Some(5), Thickness: types.Some(9), Material: "Mud Brick"},
		},
	}
	result, err := estimate.NewEngine(estimate.DefaultConfig(), estimate.WithLogger(zap.NewNop())).
		Estimate(context.Background(), project)
	require.NoError(t, err)
	return result
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry(Options{NoColor: true})

	assert.Equal(t, []Format{FormatCLI, FormatJSON, FormatMarkdown, FormatPDF, FormatXLSX}, r.Formats())

	f, err := r.Get("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f.Format())

	_, err = r.Get("html")
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
}

func TestFormatMoney(t *testing.T) {
	tests := map[string]string{
		"0":          "0.00",
		"999.5":      "999.50",
		"1000":       "1,000.00",
		"1234567.89": "1,234,567.89",
		"-12345.6":   "-12,345.60",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestCLIFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CLIFormatter{NoColor: true}).Render(&buf, testResult(t)))

	out := buf.String()
	assert.Contains(t, out, "Estimate: Corner | House")
	assert.Contains(t, out, "Clay Brick")
	assert.Contains(t, out, errors.CodeTileHeightExceedsWallHeight)
	assert.Contains(t, out, "Mud Brick")
	assert.NotContains(t, out, "\033[")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Render(&buf, testResult(t)))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Contains(t, doc, "bill_of_quantities")
	assert.Equal(t, 1360.0, doc["plot_area"])

	surfaces := doc["surfaces"].([]interface{})
	blocked := surfaces[1].(map[string]interface{})
	assert.Nil(t, blocked["tile_area"], "non-computable measures encode as null")
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownFormatter{}).Render(&buf, testResult(t)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Estimate: Corner | House"))
	assert.Contains(t, out, "## Bill of quantities")
	assert.Contains(t, out, "## Violations")
	assert.Contains(t, out, "## Assumptions")
	assert.Contains(t, out, "| Clay Brick (north) | masonry | 566.00 | unit |")
}

func TestXLSXFormatter(t *testing.T) {
	result := testResult(t)
	var buf bytes.Buffer
	require.NoError(t, (&XLSXFormatter{}).Render(&buf, result))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{sheetSummary, sheetSurfaces, sheetLineItems}, book.GetSheetList())

	name, err := book.GetCellValue(sheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Corner | House", name)

	rows, err := book.GetRows(sheetLineItems)
	require.NoError(t, err)
	assert.Len(t, rows, len(result.BOQ.Items)+1)
	assert.Equal(t, "w1/01-masonry", rows[1][0])
}

func TestPDFFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&PDFFormatter{Version: "test"}).Render(&buf, testResult(t)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestBinaryFormats(t *testing.T) {
	assert.True(t, FormatXLSX.Binary())
	assert.True(t, FormatPDF.Binary())
	assert.False(t, FormatMarkdown.Binary())
}
