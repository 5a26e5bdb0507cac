// Package main is the entry point for the pdfword CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tsawler/pdfword/internal/config"
	"github.com/tsawler/pdfword/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// settings collects defaults, the config file, PDFWORD_ variables and
	// bound flags.
	settings = config.New()

	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd is the base command for the pdfword CLI.
var rootCmd = &cobra.Command{
	Use:   "pdfword",
	Short: "Convert resume PDFs into editable Word documents",
	Long: `pdfword reads the positioned text of a PDF, rebuilds lines, tables and
headings from the glyph coordinates, and writes a .docx package that Word
and LibreOffice open for editing.

Subcommands convert files, dump the reconstructed document, and serve the
conversion API over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(settings, cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := logging.New(cmd.ErrOrStderr(), logging.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
		})
		if err != nil {
			return err
		}
		logger = l
		if used := settings.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", "path", used)
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./pdfword.yaml or ~/.config/pdfword/pdfword.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text or json")

	_ = settings.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = settings.BindPFlag("log.format", flags.Lookup("log-format"))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
