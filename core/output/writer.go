// Package output handles file naming and writing for issuepipe artifacts.
// Every artifact of an issue is named after its slug:
//
//	<imageDir>/<slug>-cover.jpg
//	<imageDir>/<slug>-page-<N>.jpg
//	<dataDir>/<slug>.json
//	<pdfDir>/<slug>.pdf
//
// An empty directory disables that category of output.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ErrDisabled is returned when writing to a category with no directory.
var ErrDisabled = errors.New("output directory not configured")

// Writer writes artifacts to disk.
type Writer struct {
	ImageDir string
	DataDir  string
	PDFDir   string
}

// New creates a Writer. Directories are created on first write, so a Writer
// that is never asked to write leaves the filesystem untouched.
func New(imageDir, dataDir, pdfDir string) *Writer {
	return &Writer{ImageDir: imageDir, DataDir: dataDir, PDFDir: pdfDir}
}

// Images reports whether image output is enabled.
func (w *Writer) Images() bool { return w != nil && w.ImageDir != "" }

// Data reports whether metadata output is enabled.
func (w *Writer) Data() bool { return w != nil && w.DataDir != "" }

// PDFs reports whether PDF copies are enabled.
func (w *Writer) PDFs() bool { return w != nil && w.PDFDir != "" }

// CoverName returns the file name of the cover image.
func CoverName(slug string) string {
	return slug + "-cover.jpg"
}

// PageName returns the file name of a page image.
func PageName(slug string, page int) string {
	return slug + "-page-" + strconv.Itoa(page) + ".jpg"
}

// WriteCover writes the cover JPEG.
func (w *Writer) WriteCover(slug string, data []byte) (string, error) {
	return writeFile(w.ImageDir, CoverName(slug), data)
}

// WritePage writes the JPEG of page.
func (w *Writer) WritePage(slug string, page int, data []byte) (string, error) {
	return writeFile(w.ImageDir, PageName(slug, page), data)
}

// WriteData writes a metadata document with the given extension (".json").
func (w *Writer) WriteData(slug string, data []byte, ext string) (string, error) {
	return writeFile(w.DataDir, slug+ext, data)
}

// CopyPDF writes the source bytes unchanged as <slug>.pdf.
func (w *Writer) CopyPDF(slug string, data []byte) (string, error) {
	return writeFile(w.PDFDir, slug+".pdf", data)
}

// RemoveSource deletes the processed source file.
func RemoveSource(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

func writeFile(dir, name string, data []byte) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("writing %s: %w", name, ErrDisabled)
	}
	// Ensure the output directory exists.
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}
