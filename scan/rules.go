// Package scan: path filtering rules.
// Decides which directory entries are newsletter sources and normalizes
// paths for deduplication.
package scan

import (
	"os"
	"path/filepath"
	"strings"
)

// pdfExtension is matched case-insensitively.
const pdfExtension = ".pdf"

// IsPDF reports whether name has a .pdf extension in any letter case.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), pdfExtension)
}

// IsRegularFile reports whether path names a regular file, following
// symlinks.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// NormalizePath cleans path and makes it absolute when possible, so the same
// file reached by two spellings is seen once.
func NormalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
