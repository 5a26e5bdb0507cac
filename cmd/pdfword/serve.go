package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/tsawler/pdfword/internal/logging"
	"github.com/tsawler/pdfword/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion API over HTTP",
	Long: `Serve starts the HTTP API: POST /api/v1/convert for .docx output,
/api/v1/convert/html for the editor preview, /api/v1/convert/tables for an
.xlsx of the detected tables, and /api/v1/export to turn edited HTML back
into .docx. It stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gin.SetMode(gin.ReleaseMode)

		l := logging.Module(logger, "server")
		srv := server.New(cfg.Converter(logging.Module(logger, "convert")), cfg.Server, l)
		return srv.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("port", "", "listen address, e.g. :8080")
	serveCmd.Flags().Int64("max-upload-mb", 0, "largest accepted upload in MiB (default 20)")
	serveCmd.Flags().Duration("conversion-timeout", 0, "per-request conversion deadline (default 30s)")

	_ = settings.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = settings.BindPFlag("server.max_upload_mb", serveCmd.Flags().Lookup("max-upload-mb"))
	_ = settings.BindPFlag("server.conversion_timeout", serveCmd.Flags().Lookup("conversion-timeout"))

	rootCmd.AddCommand(serveCmd)
}
