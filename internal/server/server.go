// Package server runs the HTTP API with graceful shutdown.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"buildcost/api"
	"buildcost/core/estimate"
	"buildcost/internal/config"
	"buildcost/internal/logging"
)

// shutdownTimeout bounds draining in-flight requests
const shutdownTimeout = 10 * time.Second

// New builds an http.Server for the API from configuration
func New(cfg *config.Config, engine *estimate.Engine, version string) *http.Server {
	write := time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second
	handler := api.NewServer(engine, api.Options{
		Version:      version,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Timeout:      write,
		Logger:       logging.Named("api"),
	})

	return &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      write,
	}
}

// Run serves until ctx is done or SIGINT/SIGTERM arrives
func Run(ctx context.Context, cfg *config.Config, engine *estimate.Engine, version string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := New(cfg, engine, version)
	log := logging.Named("server")

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
