// Package scan provides batch discovery and processing of newsletter PDFs.
// It lists the sources in a directory and feeds them one at a time to a
// core.Processor, keeping batch logic separate from the per-file pipeline.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Discover lists the PDF files directly inside dir, sorted by name.
// Subdirectories are not descended into and non-regular files are skipped.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsPDF(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !IsRegularFile(path) {
			continue
		}
		paths = append(paths, path)
	}

	// os.ReadDir already sorts by name; keep the order explicit.
	sort.Strings(paths)
	return paths, nil
}
