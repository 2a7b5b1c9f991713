// Package main - Entry point for the buildcost HTTP server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"buildcost/core/estimate"
	"buildcost/internal/config"
	"buildcost/internal/logging"
	"buildcost/internal/server"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", config.DefaultPath(), "Config file")
	addr := flag.String("addr", "", "Server address (overrides config)")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	defer logging.Sync()

	engine := estimate.NewEngine(cfg.Engine(), estimate.WithLogger(logging.Named("engine")))

	fmt.Printf("buildcost server v%s\n", version)
	fmt.Printf("   API: http://localhost%s/api/v1\n", cfg.Server.Addr)

	if err := server.Run(context.Background(), cfg, engine, version); err != nil {
		logging.Error("server failed", zap.Error(err))
		os.Exit(1)
	}
}
