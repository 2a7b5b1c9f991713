// Package cmd - diff command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"buildcost/core/diff"
	"buildcost/core/estimate"
	"buildcost/core/output"
	"buildcost/core/project"
	"buildcost/internal/logging"
)

var (
	diffJSON      bool
	diffThreshold float64
	diffTop       int
)

var diffCmd = &cobra.Command{
	Use:   "diff <before-file> <after-file>",
	Short: "Compare the estimates of two project files",
	Long: `Estimate two versions of a project and show what changed.

Surfaces are matched by id. Changes below the threshold are reported
as unchanged.

Examples:
  buildcost diff house-v1.hcl house-v2.hcl
  buildcost diff --json before.yaml after.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "print the diff as JSON")
	diffCmd.Flags().Float64Var(&diffThreshold, "threshold", 0.001, "relative change treated as unchanged")
	diffCmd.Flags().IntVar(&diffTop, "top", 10, "number of largest changes to list")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	if diffTop < 0 {
		return fmt.Errorf("--top must not be negative, got %d", diffTop)
	}
	engine := newEngine()

	results := make([]*estimate.Result, 2)
	g, ctx := errgroup.WithContext(context.Background())
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			p, err := project.Load(path)
			if err != nil {
				return err
			}
			results[i], err = engine.Estimate(ctx, p)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	d := diff.NewDiffer(diffThreshold).Diff(results[0], results[1])
	logging.Debug("diff computed",
		zap.String("before", args[0]),
		zap.String("after", args[1]),
		zap.Int("added", len(d.Added)),
		zap.Int("removed", len(d.Removed)),
		zap.Int("changed", len(d.Changed)),
	)
	if diffJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}

	w := newWriter(cmd)
	w.Header("Estimate diff")
	w.Print("%s", d.Summary())

	top := d.TopChanges(diffTop)
	if len(top) == 0 {
		return nil
	}
	w.Header("Largest changes")
	t := w.NewTable("Surface", "Change", "Before", "After", "Delta", "Carbon kg").AlignRight(2, 3, 4, 5)
	for _, s := range top {
		t.AddRow(
			s.Label,
			s.ChangeType.String(),
			output.FormatMoney(s.Before),
			output.FormatMoney(s.After),
			output.FormatMoney(s.Delta),
			fmt.Sprintf("%+.1f", s.CarbonDelta),
		)
	}
	t.Render()

	for _, s := range top {
		for _, r := range s.ChangeReasons {
			w.Debug("%s: [%s] %s", s.Label, r.Category, r.What)
		}
	}
	return nil
}
