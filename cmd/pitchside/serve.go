// ABOUTME: CLI command for starting the HTTP JSON API.
// ABOUTME: Serves the derived tables to the dashboard until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/harperreed/pitchside/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP JSON API that feeds the dashboard.

ROUTES:

  GET /healthcheck
  GET /api/seasons
  GET /api/players
  GET /api/players/:id
  GET /api/players/:id/matches
  GET /api/players/:id/load?season=
  GET /api/players/:id/injuries?season=
  GET /api/players/:id/recovery/daily?season=
  GET /api/players/:id/recovery/heatmap?season=
  GET /api/players/:id/recovery/weekly?season=
  GET /api/players/:id/recovery/summary

The tables are computed once at startup; restart to pick up new files.

EXAMPLES:

  pitchside serve                          # Listen on the configured address
  pitchside serve --addr 0.0.0.0:8050`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.GetHTTPAddr()
		}
		if cfg.GetLogMode() != "dev" {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return api.Serve(ctx, addr, result, log)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, 127.0.0.1:8050)")
	rootCmd.AddCommand(serveCmd)
}
