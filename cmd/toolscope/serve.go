package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonwraymond/toolscope/config"
	"github.com/jonwraymond/toolscope/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog HTTP server",
	Long: `Start the HTTP server.

Endpoints:
  GET /api/catalog   catalog of the sandbox globals
  GET /health        liveness check
  GET /metrics       Prometheus metrics (metrics.enabled)
  /mcp               MCP streamable HTTP endpoint (mcp.enabled)

The configuration file is watched and reloaded on change or SIGHUP.`,
	RunE: runServe,
}

var serveHotReload bool

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveHotReload, "hot-reload", true, "reload configuration when the file changes")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return err
	}
	logger := server.NewLogger(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	holder, err := newHolder(cfgFile, cfg, logger)
	if err != nil {
		return err
	}
	defer holder.Stop()
	cfg = holder.Get()

	var metrics *server.Metrics
	if cfg.Metrics.Enabled {
		metrics = server.NewMetrics()
	}

	a, err := newApp(holder, logger, metrics)
	if err != nil {
		return err
	}

	routerCfg := server.RouterConfig{
		Metrics:     metrics,
		MetricsPath: cfg.Metrics.Path,
		MCPPath:     cfg.MCP.Path,
	}
	if cfg.MCP.Enabled {
		routerCfg.MCPHandler = server.NewMCPHandler(server.NewMCPServer(cfg.MCP.Name, version, a.server))
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.NewRouter(a.server, logger, routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if serveHotReload && holder.Path() != "" {
		if err := holder.WatchFile(); err != nil {
			logger.Warn().Err(err).Msg("config file watching disabled")
		}
		holder.WatchSignals()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
