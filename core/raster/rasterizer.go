// Package raster renders PDF pages with PDFium and encodes them as JPEG.
//
// PDFium runs as WebAssembly inside the process (github.com/klippa-app/go-pdfium
// on wazero), so rendering needs neither cgo nor a system library. Pages are
// rendered at a fixed 2x scale and encoded at quality 60.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"
	"math"
	"time"

	"github.com/gaurav-prasanna/issuepipe/core"
	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
	"golang.org/x/image/draw"
)

const (
	// Scale is the fixed render scale.
	Scale = core.RenderScale
	// Quality is the fixed JPEG quality.
	Quality = 60

	// pointsPerInch is the PDF user-space resolution; DPI = Scale * 72.
	pointsPerInch = 72

	defaultTimeout = 30 * time.Second
)

// ErrCropOutOfBounds is returned when a crop rectangle does not overlap the
// rendered page.
var ErrCropOutOfBounds = errors.New("crop rectangle outside rendered page")

// PDFiumRasterizer implements core.Rasterizer on a single PDFium instance.
// Only one document can be open at a time; Open waits up to Timeout for the
// previous one to be closed.
type PDFiumRasterizer struct {
	Scale   float64
	Quality int
	Timeout time.Duration

	pool pdfium.Pool
}

// New starts the PDFium runtime. Call Close when done.
func New() (*PDFiumRasterizer, error) {
	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("starting pdfium: %w", err)
	}
	return &PDFiumRasterizer{
		Scale:   Scale,
		Quality: Quality,
		Timeout: defaultTimeout,
		pool:    pool,
	}, nil
}

// Close shuts the PDFium runtime down.
func (r *PDFiumRasterizer) Close() error {
	return r.pool.Close()
}

// Open loads data into PDFium.
func (r *PDFiumRasterizer) Open(data []byte) (core.RasterDocument, error) {
	instance, err := r.pool.GetInstance(r.Timeout)
	if err != nil {
		return nil, fmt.Errorf("acquiring pdfium instance: %w", err)
	}
	doc, err := instance.OpenDocument(&requests.OpenDocument{File: &data})
	if err != nil {
		instance.Close()
		return nil, fmt.Errorf("opening pdf for rendering: %w", err)
	}
	return &Document{
		instance: instance,
		doc:      doc.Document,
		scale:    r.Scale,
		quality:  r.Quality,
	}, nil
}

// Document is a PDF opened in PDFium.
type Document struct {
	instance pdfium.Pdfium
	doc      references.FPDF_DOCUMENT
	scale    float64
	quality  int
}

// Rasterize renders page n, crops it to crop when non-nil, and encodes the
// result as JPEG. crop is in the rendered page's pixel space. Errors are
// logged and returned; nothing is retried.
func (d *Document) Rasterize(n int, crop *core.Rect) ([]byte, error) {
	data, err := d.rasterize(n, crop)
	if err != nil {
		slog.Error("rasterizing page failed",
			"page", n,
			"error", err,
		)
		return nil, err
	}
	return data, nil
}

func (d *Document) rasterize(n int, crop *core.Rect) ([]byte, error) {
	page, err := d.Render(n)
	if err != nil {
		return nil, err
	}

	if crop != nil {
		if page, err = Crop(page, *crop); err != nil {
			return nil, err
		}
	}
	return Encode(page, d.quality)
}

// Render draws page n at the document's scale onto an opaque white canvas.
func (d *Document) Render(n int) (*image.RGBA, error) {
	res, err := d.instance.RenderPageInDPI(&requests.RenderPageInDPI{
		DPI: int(math.Round(d.scale * pointsPerInch)),
		Page: requests.Page{
			ByIndex: &requests.PageByIndex{Document: d.doc, Index: n - 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", n, err)
	}
	// The bitmap lives in PDFium memory until Cleanup.
	defer res.Cleanup()

	return flatten(res.Result.Image), nil
}

// Close releases the document and hands the PDFium instance back.
func (d *Document) Close() error {
	_, err := d.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: d.doc})
	return errors.Join(err, d.instance.Close())
}

// flatten copies src over white, so transparent areas encode as paper.
func flatten(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Over)
	return dst
}

// Crop copies the part of img covered by rect (pixel space) into a new
// image anchored at the origin. The rectangle is clipped to the image.
func Crop(img *image.RGBA, rect core.Rect) (*image.RGBA, error) {
	want := image.Rect(
		int(math.Floor(rect.X)),
		int(math.Floor(rect.Y)),
		int(math.Ceil(rect.Right())),
		int(math.Ceil(rect.Bottom())),
	)
	sr := want.Intersect(img.Bounds())
	if sr.Empty() {
		return nil, fmt.Errorf("%w: %v within %v", ErrCropOutOfBounds, want, img.Bounds())
	}
	dst := image.NewRGBA(image.Rect(0, 0, sr.Dx(), sr.Dy()))
	draw.Copy(dst, image.Point{}, img, sr, draw.Src, nil)
	return dst, nil
}

// Encode writes img as JPEG at quality.
func Encode(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
