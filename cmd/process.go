// Package cmd: process command.
// Runs a single newsletter PDF through the pipeline:
// decode → extract → render → write.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var processFlags runFlags

var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Extract metadata and images from one newsletter PDF",
	Long: `Process reads one newsletter PDF, extracts its fields using the layout
rectangles, and writes the outputs whose directories are configured.
Without --data-dir the JSON record is printed to stdout instead.

Examples:
  issuepipe process issue.pdf
  issuepipe process issue.pdf --image-dir ./img --data-dir ./data --pages 5
  issuepipe process issue.pdf --config issuepipe.yaml --remove`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
	processFlags.bind(processCmd.Flags())
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := processFlags.config(cmd.Flags())
	if err != nil {
		return err
	}
	proc, cleanup, err := newProcessor(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	rec, err := proc.Process(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	slog.Info("processed", "path", args[0], "slug", rec.Slug)

	out := cmd.OutOrStdout()
	if !proc.Writer.Data() {
		data, err := proc.JSON.Render(*rec)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	fmt.Fprintf(out, "✓ Processed: %s\n", rec.Slug)
	return nil
}
