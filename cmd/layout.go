// Package cmd: layout command.
// Writes a calibration sheet with the layout rectangles outlined, to be
// overlaid on a real issue when tuning a template.
package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/issuepipe/core/config"
	"github.com/gaurav-prasanna/issuepipe/core/render"
	"github.com/spf13/cobra"
)

var (
	flagLayoutOut    string
	flagLayoutConfig string
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Write a PDF outlining the layout rectangles",
	Long: `Layout draws every field rectangle of the configured layout onto blank
pages of the template size, labelled with the field name.

Examples:
  issuepipe layout --out sheet.pdf
  issuepipe layout --config issuepipe.yaml --out sheet.pdf`,
	Args: cobra.NoArgs,
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.Flags().StringVar(&flagLayoutOut, "out", "layout.pdf", "Output file")
	layoutCmd.Flags().StringVar(&flagLayoutConfig, "config", "", "Config file whose layout is drawn")
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if flagLayoutConfig != "" {
		loaded, err := config.Load(flagLayoutConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	data, err := render.NewLayoutRenderer().Render(cfg.Layout, render.Sample{})
	if err != nil {
		return err
	}
	if err := os.WriteFile(flagLayoutOut, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", flagLayoutOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", flagLayoutOut)
	return nil
}
