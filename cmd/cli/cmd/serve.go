// Package cmd - serve command
package cmd

import (
	"github.com/spf13/cobra"

	"buildcost/internal/config"
	"buildcost/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		return server.Run(cmd.Context(), cfg, newEngine(), Version)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}
