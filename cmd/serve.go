package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alexiusacademia/gocoil/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the layout calculator over HTTP",
	Long: `Start an HTTP API that lays out the design posted to it.

Endpoints:
  GET  /healthz
  GET  /api/defaults?units=mm|in
  POST /api/layout?units=mm|in      JSON result
  POST /api/render?format=png|svg|pdf
  POST /api/chart                   HTML chart
  POST /api/export                  Excel workbook

The request body is a design document, the same JSON as a design file.

Examples:
  gocoil serve --addr :8080
  curl -X POST localhost:8080/api/layout -d '{"units":"in","total_turns":200}'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(logger).Run(ctx, serveAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
}
