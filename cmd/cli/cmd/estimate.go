// Package cmd - estimate command
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"buildcost/core/output"
	"buildcost/core/project"
	"buildcost/core/types"
	"buildcost/core/ui"
	"buildcost/internal/config"
	"buildcost/internal/logging"
)

var (
	outputFormat string
	outputFile   string
	currency     string
	marlaSize    string
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate <project-file>",
	Short: "Estimate quantities, cost and carbon for a project",
	Long: `Load a project file and produce a priced bill of quantities.

The file format is chosen by extension: .hcl, .yaml/.yml or .json.
Surfaces that violate a geometric constraint are reported and left out
of the totals; the rest of the project is still estimated.

Examples:
  buildcost estimate house.hcl
  buildcost estimate --format json house.yaml
  buildcost estimate --format pdf --out house.pdf house.hcl`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)

	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, markdown, xlsx, pdf)")
	estimateCmd.Flags().StringVarP(&outputFile, "out", "o", "", "write output to file instead of stdout")
	estimateCmd.Flags().StringVar(&currency, "currency", "", "override the project currency")
	estimateCmd.Flags().StringVar(&marlaSize, "marla-size", "", "override the sq ft per marla (252 or 272)")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.Get()
	w := newWriter(cmd)

	format := output.Format(outputFormat)
	if format == "" {
		format = output.Format(cfg.Output.DefaultFormat)
	}
	formatter, err := output.DefaultRegistry(output.Options{
		NoColor: cfg.Output.NoColor,
		Verbose: verbose,
		Version: Version,
	}).Get(format)
	if err != nil {
		return err
	}
	if formatter.Format().Binary() && outputFile == "" {
		return fmt.Errorf("%s output is binary; use --out to choose a file", formatter.Format())
	}

	p, err := project.Load(args[0])
	if err != nil {
		return err
	}
	if currency != "" {
		p.Currency = types.Currency(strings.ToUpper(currency))
	}
	if marlaSize != "" {
		size, err := types.ParseMarlaSize(marlaSize)
		if err != nil {
			return err
		}
		p.MarlaSize = size
	}

	log := logging.With(zap.String("file", args[0]), zap.String("project", p.ID))
	log.Info("Starting estimation", zap.Int("surfaces", len(p.Surfaces)))

	interactive := outputFile == "" && formatter.Format() == output.FormatCLI
	var spinner *ui.Spinner
	if interactive {
		spinner = w.NewSpinner(fmt.Sprintf("Estimating %d surfaces...", len(p.Surfaces)))
		spinner.Start()
	}

	result, err := newEngine().Estimate(ctx, p)
	if spinner != nil {
		spinner.Stop(err == nil)
	}
	if err != nil {
		return err
	}
	if result.Totals.Blocked > 0 {
		logging.Warn("surfaces blocked by violations",
			zap.String("file", args[0]),
			zap.Int("blocked", result.Totals.Blocked),
			zap.Int("violations", result.ViolationCount()),
		)
	}

	out := cmd.OutOrStdout()
	var file *os.File
	if outputFile != "" {
		file, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", outputFile, err)
		}
		defer file.Close()
		out = file
	}

	buf := bufio.NewWriter(out)
	if err := formatter.Render(buf, result); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}

	if file != nil {
		w.Success("Wrote %s report to %s", formatter.Format(), outputFile)
		reportBlocked(cmd.ErrOrStderr(), result.Totals.Blocked)
	}
	return nil
}

func reportBlocked(out io.Writer, n int) {
	if n > 0 {
		fmt.Fprintf(out, "Warning: %d surfaces blocked by violations\n", n)
	}
}
