package project

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"buildcost/core/types"
	"buildcost/internal/errors"
)

var projectSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "id"},
		{Name: "name"},
		{Name: "plot_size_marlas"},
		{Name: "marla_size"},
		{Name: "currency"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "surface", LabelNames: []string{"kind", "name"}},
	},
}

var surfaceSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "id"},
		{Name: "length"},
		{Name: "height"},
		{Name: "width"},
		{Name: "thickness"},
		{Name: "material"},
		{Name: "cost_override"},
		{Name: "is_curtain_wall"},
		{Name: "glass_thickness"},
		{Name: "is_insulation_used"},
		{Name: "insulation"},
		{Name: "insulation_thickness"},
		{Name: "is_tiles_used"},
		{Name: "tile_height"},
		{Name: "tile_material"},
		{Name: "exterior_finish"},
		{Name: "interior_finish"},
		{Name: "plaster_faces"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "opening", LabelNames: []string{"kind"}},
	},
}

var openingSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "name"},
		{Name: "width"},
		{Name: "height"},
		{Name: "count"},
	},
}

// parseHCL decodes a project of the form
//
//	name             = "House"
//	plot_size_marlas = 10
//
//	surface "wall" "north" {
//	  length    = 30
//	  height    = 10
//	  thickness = 9
//	  material  = "Clay Brick"
//
//	  opening "door" {
//	    width  = 3
//	    height = 7
//	  }
//	}
func parseHCL(src []byte, filename string) (*types.Project, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	content, diags := file.Body.Content(projectSchema)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	d := &decoder{}
	p := &types.Project{
		ID:             d.str(content.Attributes["id"]),
		Name:           d.str(content.Attributes["name"]),
		PlotSizeMarlas: d.measure(content.Attributes["plot_size_marlas"]),
		Currency:       types.Currency(strings.ToUpper(d.str(content.Attributes["currency"]))),
	}
	if attr := content.Attributes["marla_size"]; attr != nil {
		size, err := types.ParseMarlaSize(strconv.Itoa(d.integer(attr)))
		if err != nil {
			return nil, errors.Parsing(fmt.Sprintf("%s:%d: invalid marla_size", filename, attr.Range.Start.Line), err)
		}
		p.MarlaSize = size
	}

	for _, block := range content.Blocks {
		s, sdiags := d.surface(block)
		diags = append(diags, sdiags...)
		p.Surfaces = append(p.Surfaces, s)
	}
	diags = append(diags, d.diags...)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}
	return p, nil
}

type decoder struct {
	diags hcl.Diagnostics
}

func (d *decoder) surface(block *hcl.Block) (types.SurfaceInput, hcl.Diagnostics) {
	content, diags := block.Body.Content(surfaceSchema)
	attrs := content.Attributes

	s := types.SurfaceInput{
		ID:                  d.str(attrs["id"]),
		Name:                block.Labels[1],
		Kind:                types.SurfaceKind(block.Labels[0]),
		Length:              d.measure(attrs["length"]),
		Height:              d.measure(attrs["height"]),
		Width:               d.measure(attrs["width"]),
		Thickness:           d.measure(attrs["thickness"]),
		Material:            d.str(attrs["material"]),
		CostOverride:        d.measure(attrs["cost_override"]),
		IsCurtainWall:       d.boolean(attrs["is_curtain_wall"]),
		GlassThickness:      d.str(attrs["glass_thickness"]),
		IsInsulationUsed:    d.boolean(attrs["is_insulation_used"]),
		Insulation:          d.str(attrs["insulation"]),
		InsulationThickness: d.measure(attrs["insulation_thickness"]),
		IsTilesUsed:         d.boolean(attrs["is_tiles_used"]),
		TileHeight:          d.measure(attrs["tile_height"]),
		TileMaterial:        d.str(attrs["tile_material"]),
		ExteriorFinish:      d.str(attrs["exterior_finish"]),
		InteriorFinish:      d.str(attrs["interior_finish"]),
		PlasterFaces:        d.integer(attrs["plaster_faces"]),
	}

	for _, ob := range content.Blocks {
		oc, odiags := ob.Body.Content(openingSchema)
		diags = append(diags, odiags...)
		s.Openings = append(s.Openings, types.Opening{
			Name:   d.str(oc.Attributes["name"]),
			Kind:   ob.Labels[0],
			Width:  d.measure(oc.Attributes["width"]),
			Height: d.measure(oc.Attributes["height"]),
			Count:  d.integer(oc.Attributes["count"]),
		})
	}
	return s, diags
}

func (d *decoder) value(attr *hcl.Attribute) (cty.Value, bool) {
	if attr == nil {
		return cty.NilVal, false
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		d.diags = append(d.diags, diags...)
		return cty.NilVal, false
	}
	if val.IsNull() || !val.IsKnown() {
		return cty.NilVal, false
	}
	return val, true
}

func (d *decoder) mismatch(attr *hcl.Attribute, want string) {
	d.diags = append(d.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Incorrect attribute value type",
		Detail:   fmt.Sprintf("%s must be %s", attr.Name, want),
		Subject:  attr.Expr.Range().Ptr(),
	})
}

// measure accepts numbers and numeric strings; blank strings are not computable
func (d *decoder) measure(attr *hcl.Attribute) types.Measure {
	val, ok := d.value(attr)
	if !ok {
		return types.None
	}
	switch val.Type() {
	case cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return types.Some(f)
	case cty.String:
		s := strings.TrimSpace(val.AsString())
		if s == "" {
			return types.None
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return types.None
		}
		return types.Some(f)
	default:
		d.mismatch(attr, "a number")
		return types.None
	}
}

func (d *decoder) str(attr *hcl.Attribute) string {
	val, ok := d.value(attr)
	if !ok {
		return ""
	}
	if val.Type() != cty.String {
		d.mismatch(attr, "a string")
		return ""
	}
	return val.AsString()
}

func (d *decoder) boolean(attr *hcl.Attribute) bool {
	val, ok := d.value(attr)
	if !ok {
		return false
	}
	if val.Type() != cty.Bool {
		d.mismatch(attr, "a bool")
		return false
	}
	return val.True()
}

func (d *decoder) integer(attr *hcl.Attribute) int {
	val, ok := d.value(attr)
	if !ok {
		return 0
	}
	if val.Type() != cty.Number {
		d.mismatch(attr, "a number")
		return 0
	}
	n, _ := val.AsBigFloat().Int64()
	return int(n)
}

// diagError converts the first error diagnostic into a parsing error
func diagError(filename string, diags hcl.Diagnostics) error {
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		line := 0
		if diag.Subject != nil {
			line = diag.Subject.Start.Line
		}
		return errors.Parsing(fmt.Sprintf("%s:%d: %s", filename, line, diag.Summary), diags).
			WithContext("file", filename).
			WithContext("line", line).
			WithContext("detail", diag.Detail)
	}
	return nil
}
