// Package config holds the per-invocation settings of issuepipe.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/issuepipe/core"
	"gopkg.in/yaml.v3"
)

// DefaultInputDir is scanned when no input directory is configured.
const DefaultInputDir = "pdfs"

// ErrInvalidConfig is returned by Validate and Load for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

// Config contains the settings for one run.
type Config struct {
	// InputDir is the directory scanned for PDF files.
	InputDir string `json:"inputDir" yaml:"inputDir"`

	// ExtractPagesToImage lists pages rendered to <slug>-page-<N>.jpg.
	ExtractPagesToImage []int `json:"extractPagesToImage" yaml:"extractPagesToImage"`

	// Output directories; an empty value disables that output.
	OutputDataDir  string `json:"outputDataDir" yaml:"outputDataDir"`
	OutputImageDir string `json:"outputImageDir" yaml:"outputImageDir"`
	OutputPdfDir   string `json:"outputPdfDir" yaml:"outputPdfDir"`

	// RemoveAfterProcessing deletes each source after it is processed.
	RemoveAfterProcessing bool `json:"removeAfterProcessing" yaml:"removeAfterProcessing"`

	// Isolate keeps a batch going after a failed file and reports a
	// summary at the end instead of stopping at the first failure.
	Isolate bool `json:"isolate" yaml:"isolate"`

	// Layout overrides the template rectangles. Omitted entries keep the
	// standard template's values.
	Layout core.Layout `json:"layout" yaml:"layout"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		InputDir: DefaultInputDir,
		Layout:   core.DefaultLayout(),
	}
}

// Load reads a JSON or YAML config file on top of Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: unsupported config format %q", ErrInvalidConfig, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks page numbers and rectangle sizes.
func (c *Config) Validate() error {
	for _, n := range c.ExtractPagesToImage {
		if n < 1 {
			return fmt.Errorf("%w: page %d in extractPagesToImage", ErrInvalidConfig, n)
		}
	}

	l := c.Layout
	for name, page := range map[string]int{
		"fieldPage":     l.FieldPage,
		"editorialPage": l.EditorialPage,
		"coverPage":     l.CoverPage,
	} {
		if page < 1 {
			return fmt.Errorf("%w: layout %s must be at least 1, got %d", ErrInvalidConfig, name, page)
		}
	}
	for name, r := range map[string]core.Rect{
		"date":        l.Date,
		"description": l.Description,
		"issue":       l.Issue,
		"editorial":   l.Editorial,
		"cover":       l.Cover,
	} {
		if r.Width < 0 || r.Height < 0 {
			return fmt.Errorf("%w: layout %s has negative size %vx%v", ErrInvalidConfig, name, r.Width, r.Height)
		}
	}
	return nil
}

// GetInputDir returns the configured input directory, defaulting to
// DefaultInputDir.
func (c *Config) GetInputDir() string {
	if c == nil || c.InputDir == "" {
		return DefaultInputDir
	}
	return c.InputDir
}
