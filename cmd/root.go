// Package cmd implements the CLI commands for issuepipe using Cobra.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "issuepipe",
	Short: "issuepipe — extract metadata and images from newsletter PDFs",
	Long: `issuepipe reads newsletter issues laid out on a fixed template and
extracts the issue date, issue number, description and editorial text,
renders the cover and selected pages to JPEG, and writes a JSON record
named after the issue's slug.

Usage:
  issuepipe process <file> [flags]
  issuepipe scan [dir] [flags]
  issuepipe layout --out sheet.pdf`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger(cmd.ErrOrStderr(), flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// setupLogger installs the default slog logger for this run, tagged with a
// fresh run id.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).
		With("run_id", uuid.NewString())
	slog.SetDefault(logger)
	return logger
}

// Execute runs the root command. An interrupt stops a batch between files.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
