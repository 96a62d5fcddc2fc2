package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexiusacademia/gorcframe/internal/config"
	"github.com/alexiusacademia/gorcframe/internal/server"
	"github.com/alexiusacademia/gorcframe/internal/version"
	"github.com/spf13/cobra"
)

var (
	serveEnvFile string
	serveAddr    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the design pipeline as a JSON API",
	Long: `Start the HTTP API.

Endpoints:
  GET  /api/health       liveness and version
  POST /api/pipeline     full pipeline for a project document
  POST /api/grid         column grid only
  POST /api/climate      climate and envelope only
  POST /api/report/pdf   calculation report (PDF)
  POST /api/report/xlsx  bill of quantities (XLSX)

Settings come from the environment and an optional .env file:
  GORCFRAME_ADDR              listen address (default :8080)
  GORCFRAME_RATE_LIMIT        requests per second per client (default 5)
  GORCFRAME_RATE_BURST        burst per client (default 10)
  GORCFRAME_SHUTDOWN_TIMEOUT  graceful shutdown timeout (default 5s)
  GORCFRAME_CORS_ORIGIN       allowed CORS origin (default *)
  GORCFRAME_LOG_LEVEL         debug, info, warn or error
  GORCFRAME_LOG_FORMAT        text or json

Examples:
  gorcframe serve
  gorcframe serve --addr 127.0.0.1:9000 --env deploy.env`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveEnvFile, "env", ".env", "Environment file to load")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides GORCFRAME_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveEnvFile)
	if err != nil {
		return WrapExitError(ExitFailure, "loading configuration", err)
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	logger := cfg.Logger(cmd.ErrOrStderr())
	logger.Info("gorcframe API", "version", version.Version, "addr", cfg.Addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, logger).ListenAndServe(ctx); err != nil {
		return WrapExitError(ExitFailure, "serving", err)
	}
	logger.Info("server stopped")
	return nil
}
