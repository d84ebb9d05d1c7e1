// Package cmd: scan command.
// Processes every PDF in a directory, one at a time.
package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/issuepipe/scan"
	"github.com/spf13/cobra"
)

var (
	scanFlags   runFlags
	flagIsolate bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Process every PDF in a directory",
	Long: `Scan lists the *.pdf files directly inside dir (or the configured
inputDir) and processes them in name order. By default the first failure
stops the batch; with --isolate every file is attempted and a summary is
printed at the end.

Examples:
  issuepipe scan ./incoming --image-dir ./img --data-dir ./data
  issuepipe scan --config issuepipe.yaml --isolate`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanFlags.bind(scanCmd.Flags())
	scanCmd.Flags().BoolVar(&flagIsolate, "isolate", false, "Keep going after a failed file and report a summary")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := scanFlags.config(cmd.Flags())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("isolate") {
		cfg.Isolate = flagIsolate
	}
	dir := cfg.GetInputDir()
	if len(args) == 1 {
		dir = args[0]
	}

	proc, cleanup, err := newProcessor(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scanning %s...\n", dir)

	batch := &scan.Batch{Processor: proc, Isolate: cfg.Isolate, Progress: out}
	summary, err := batch.Scan(cmd.Context(), dir)
	if err != nil {
		return err
	}

	total := summary.Processed + summary.Failed
	fmt.Fprintf(out, "\n%d/%d files processed\n", summary.Processed, total)
	if summary.Failed > 0 {
		return fmt.Errorf("%d/%d files failed", summary.Failed, total)
	}
	return nil
}
