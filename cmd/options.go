// Package cmd: shared run options.
// Every processing command accepts the same output flags; they are layered
// over the config file, which is layered over the built-in defaults.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/gaurav-prasanna/issuepipe/core"
	"github.com/gaurav-prasanna/issuepipe/core/config"
	"github.com/gaurav-prasanna/issuepipe/core/decode"
	"github.com/gaurav-prasanna/issuepipe/core/output"
	"github.com/gaurav-prasanna/issuepipe/core/pipeline"
	"github.com/gaurav-prasanna/issuepipe/core/raster"
	"github.com/spf13/pflag"
)

// runFlags holds the flags shared by process and scan.
type runFlags struct {
	configPath string
	imageDir   string
	dataDir    string
	pdfDir     string
	pages      []int
	remove     bool
}

func (f *runFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "Config file (.json, .yaml or .yml)")
	fs.StringVar(&f.imageDir, "image-dir", "", "Directory for cover and page images (empty: no images)")
	fs.StringVar(&f.dataDir, "data-dir", "", "Directory for JSON records (empty: no records)")
	fs.StringVar(&f.pdfDir, "pdf-dir", "", "Directory for slug-named PDF copies (empty: no copies)")
	fs.IntSliceVar(&f.pages, "pages", nil, "Extra pages to render as <slug>-page-<N>.jpg")
	fs.BoolVar(&f.remove, "remove", false, "Delete each source PDF after processing")
}

// config loads the config file, if any, and applies the flags that were
// set explicitly on the command line.
func (f *runFlags) config(fs *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if fs.Changed("image-dir") {
		cfg.OutputImageDir = f.imageDir
	}
	if fs.Changed("data-dir") {
		cfg.OutputDataDir = f.dataDir
	}
	if fs.Changed("pdf-dir") {
		cfg.OutputPdfDir = f.pdfDir
	}
	if fs.Changed("pages") {
		cfg.ExtractPagesToImage = f.pages
	}
	if fs.Changed("remove") {
		cfg.RemoveAfterProcessing = f.remove
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newProcessor wires the pipeline for cfg. PDFium is only started when
// images are written; the returned func shuts it down.
func newProcessor(cfg config.Config) (*pipeline.NewsletterProcessor, func(), error) {
	var (
		ras     core.Rasterizer
		cleanup = func() {}
	)
	if cfg.OutputImageDir != "" {
		r, err := raster.New()
		if err != nil {
			return nil, nil, fmt.Errorf("initializing rasterizer: %w", err)
		}
		ras = r
		cleanup = func() {
			if err := r.Close(); err != nil {
				slog.Warn("closing rasterizer", "error", err)
			}
		}
	}

	w := output.New(cfg.OutputImageDir, cfg.OutputDataDir, cfg.OutputPdfDir)
	return pipeline.New(decode.New(), ras, w, pipeline.Options{
		Layout:                cfg.Layout,
		ExtractPagesToImage:   cfg.ExtractPagesToImage,
		RemoveAfterProcessing: cfg.RemoveAfterProcessing,
	}), cleanup, nil
}
