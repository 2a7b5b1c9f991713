// Package cmd - catalog command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"buildcost/core/catalog"
	"buildcost/core/output"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [kind]",
	Short: "List the builtin material catalogs",
	Long: `List the builtin material catalogs.

Without an argument every catalog is listed. Kinds:
  brick, exterior_finish, interior_finish, insulation, glazing`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set := catalog.Builtin()
		kinds := catalog.Kinds()
		if len(args) == 1 {
			kind, err := catalog.ParseKind(args[0])
			if err != nil {
				return err
			}
			kinds = []catalog.Kind{kind}
		}

		w := newWriter(cmd)
		for _, kind := range kinds {
			c, ok := set.Get(kind)
			if !ok {
				continue
			}
			w.Header(fmt.Sprintf("%s (%d)", kind, c.Len()))
			t := w.NewTable("Name", "Cost", "Unit", "Carbon kg/unit").AlignRight(1, 3)
			for _, spec := range c.All() {
				t.AddRow(spec.Name, output.FormatMoney(spec.CostPerUnit), string(spec.Unit), fmt.Sprintf("%.3f", spec.CarbonPerUnit))
			}
			t.Render()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
