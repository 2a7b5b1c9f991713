// Package cmd - single-value calculators
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"buildcost/core/carbon"
	"buildcost/core/catalog"
	"buildcost/core/geometry"
	"buildcost/core/materials"
	"buildcost/core/output"
	"buildcost/core/surface"
	"buildcost/core/types"
	"buildcost/core/ui"
	"buildcost/internal/config"
	"buildcost/internal/errors"
)

var calcMarlaSize string

var areaCmd = &cobra.Command{
	Use:   "area <length> <height-or-width>",
	Short: "Compute the area of a wall or slab in ft²",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		area := geometry.ComputeArea(geometry.ParseDimension(args[0]), geometry.ParseDimension(args[1]))
		printMeasure(newWriter(cmd), "Area", area, types.UnitSquareFoot)
		return nil
	},
}

var volumeCmd = &cobra.Command{
	Use:   "volume <area> <thickness-inches>",
	Short: "Compute a volume in ft³ from an area and a thickness in inches",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		volume := geometry.ComputeVolume(geometry.ParseDimension(args[0]), geometry.ParseDimension(args[1]))
		printMeasure(newWriter(cmd), "Volume", volume, types.UnitCubicFoot)
		return nil
	},
}

var tileAreaCmd = &cobra.Command{
	Use:   "tile-area <tile-height> <length> <wall-height>",
	Short: "Compute the tiled area of a wall in ft²",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := newWriter(cmd)
		area, err := geometry.ComputeTileArea(
			geometry.ParseDimension(args[0]),
			geometry.ParseDimension(args[1]),
			geometry.ParseDimension(args[2]),
		)
		if v, ok := surface.AsViolation(err); ok {
			w.Warning("%s: %s", v.Code, v.Message)
			return nil
		}
		if err != nil {
			return err
		}
		printMeasure(w, "Tile area", area, types.UnitSquareFoot)
		return nil
	},
}

var plotAreaCmd = &cobra.Command{
	Use:   "plot-area <marlas>",
	Short: "Convert a plot size in marlas to ft²",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size := config.Get().Estimation.MarlaSize
		if calcMarlaSize != "" {
			parsed, err := types.ParseMarlaSize(calcMarlaSize)
			if err != nil {
				return errors.Wrap(errors.TypeInput, "invalid --marla-size", err)
			}
			size = parsed
		}
		area := geometry.ComputePlotArea(geometry.ParseDimension(args[0]), size)
		printMeasure(newWriter(cmd), fmt.Sprintf("Plot area (%d ft²/marla)", size), area, types.UnitSquareFoot)
		return nil
	},
}

var wallCmd = &cobra.Command{
	Use:   "wall <volume> <material>",
	Short: "Compute bricks, mortar, cement and sand for a wall volume in ft³",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, ok := catalog.Builtin().Find(catalog.KindBrick, args[1])
		if !ok {
			return errors.NotFound("material", args[1])
		}
		c := materials.WallConsumption(geometry.ParseDimension(args[0]).Or(0), &spec)
		kg := newEngine().Config().Carbon.ForConsumption(c) + carbon.ForMaterial(spec, float64(c.NumUnits))
		printConsumption(newWriter(cmd), spec.Name, c, kg)
		return nil
	},
}

var plasterCmd = &cobra.Command{
	Use:   "plaster <area>",
	Short: "Compute cement and sand for half an inch of plaster over an area in ft²",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := materials.Plaster(geometry.ParseDimension(args[0]).Or(0))
		printConsumption(newWriter(cmd), "Plaster", c, newEngine().Config().Carbon.ForConsumption(c))
		return nil
	},
}

var concreteCmd = &cobra.Command{
	Use:   "concrete <volume>",
	Short: "Compute cement, sand and aggregate for a concrete volume in ft³",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := materials.Concrete(geometry.ParseDimension(args[0]).Or(0), config.Get().Estimation.ConcreteMix)
		printConsumption(newWriter(cmd), "Concrete", c, newEngine().Config().Carbon.ForConsumption(c))
		return nil
	},
}

func init() {
	plotAreaCmd.Flags().StringVar(&calcMarlaSize, "marla-size", "", "sq ft per marla (252 or 272)")

	rootCmd.AddCommand(areaCmd, volumeCmd, tileAreaCmd, plotAreaCmd, wallCmd, plasterCmd, concreteCmd)
}

// printMeasure prints a value, or a hint when the input was incomplete
func printMeasure(w *ui.Writer, label string, m types.Measure, unit types.Unit) {
	if !m.Valid {
		w.Warning("%s: not computable from the given input", label)
		return
	}
	w.Println("%s: %s %s", label, m.String(), unit)
}

func printConsumption(w *ui.Writer, label string, c materials.Consumption, carbonKg float64) {
	w.Header(label)
	t := w.NewTable("Quantity", "Value", "Unit").AlignRight(1)
	if c.NumUnits > 0 {
		t.AddRow("Units", fmt.Sprintf("%d", c.NumUnits), string(types.UnitPiece))
	}
	if c.MortarVolume > 0 {
		t.AddRow("Mortar", output.FormatQuantity(c.MortarVolume), string(types.UnitCubicFoot))
	}
	t.AddRow("Cement", output.FormatQuantity(c.CementVolume), string(types.UnitCubicFoot))
	t.AddRow("Cement bags", output.FormatQuantity(c.CementBags), string(types.UnitBag))
	t.AddRow("Sand", output.FormatQuantity(c.SandVolume), string(types.UnitCubicFoot))
	if c.AggregateVolume > 0 {
		t.AddRow("Aggregate", output.FormatQuantity(c.AggregateVolume), string(types.UnitCubicFoot))
	}
	t.Render()

	w.Println("")
	w.SubHeader("Embodied carbon")
	w.Println("%s kgCO2e", output.FormatQuantity(carbonKg))
}
