// Package cmd provides the CLI commands for buildcost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"buildcost/core/estimate"
	"buildcost/core/ui"
	"buildcost/internal/config"
	"buildcost/internal/logging"
)

// Version is set at build time
var Version = "0.1.0"

var (
	cfgFile  string
	envFiles []string
	verbose  bool
	noColor  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "buildcost",
	Short: "Estimate construction quantities, cost and carbon",
	Long: `buildcost estimates material quantities, cost and embodied carbon
for walls, slabs, roofs and water tanks.

It reads a project file (HCL, YAML or JSON) and produces a bill of
quantities with full lineage for every line item.

Examples:
  buildcost estimate house.hcl
  buildcost estimate --format xlsx --out house.xlsx house.yaml
  buildcost area 10 8
  buildcost wall 40 "Clay Brick"`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.buildcost/config.json)")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, ".env files to load (default is ./.env when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if err := config.LoadDotEnv(envFiles...); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if noColor {
		cfg.Output.NoColor = true
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// newEngine builds an engine from the loaded configuration
func newEngine() *estimate.Engine {
	return estimate.NewEngine(config.Get().Engine(), estimate.WithLogger(logging.Named("engine")))
}

func newWriter(cmd *cobra.Command) *ui.Writer {
	w := ui.NewWriter(cmd.OutOrStdout(), config.Get().Output.NoColor)
	if verbose {
		w.SetVerbosity(2)
	}
	return w
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "buildcost version %s\n", Version)
	},
}
