// Package core defines the shared types and pipeline interfaces for issuepipe.
// Each stage of the pipeline (decode, extract, rasterize, write) is a small,
// testable interface over these types.
package core

import (
	"context"
	"time"
)

// Rect is an axis-aligned rectangle. Depending on the caller it is expressed
// in document units (extraction targets, layout) or in pixels (crop regions,
// mapped boxes).
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Right returns the end coordinate on the x axis.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the end coordinate on the y axis.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Fragment is one unit of positioned text decoded from a page.
type Fragment struct {
	Text string
	// Transform is the text rendering matrix [a b c d e f]; e and f give
	// the origin of the fragment in document space.
	Transform [6]float64
	Width     float64
	Height    float64
	FontName  string
	FontSize  float64
}

// Origin returns the fragment's origin in document space.
func (f Fragment) Origin() (x, y float64) {
	return f.Transform[4], f.Transform[5]
}

// Bounds returns the fragment box in document space, anchored at its origin.
func (f Fragment) Bounds() Rect {
	x, y := f.Origin()
	return Rect{X: x, Y: y, Width: f.Width, Height: f.Height}
}

// Viewport describes a page rendered at a given scale.
type Viewport struct {
	Width  float64 // pixels
	Height float64 // pixels
	Scale  float64
}

// NewViewport derives the viewport of page at scale.
func NewViewport(page Page, scale float64) Viewport {
	w, h := page.Size()
	return Viewport{Width: w * scale, Height: h * scale, Scale: scale}
}

// Page is a decoded page.
type Page interface {
	// Number returns the 1-based page number.
	Number() int
	// Size returns the page width and height in document units.
	Size() (width, height float64)
	// Fragments returns the page text in the decoder's native order.
	Fragments() []Fragment
	// Boxes returns ruled rectangles drawn on the page, in document units.
	Boxes() []Rect
}

// Document is a decoded PDF.
type Document interface {
	NumPages() int
	// Page returns page n (1-based).
	Page(n int) (Page, error)
	Close() error
}

// Decoder turns raw PDF bytes into a Document.
type Decoder interface {
	Decode(data []byte) (Document, error)
}

// Rasterizer opens PDF bytes for rendering.
type Rasterizer interface {
	Open(data []byte) (RasterDocument, error)
}

// RasterDocument renders the pages of one opened PDF.
type RasterDocument interface {
	// Rasterize renders page n (1-based) to JPEG, optionally cropped to a
	// pixel-space rectangle.
	Rasterize(n int, crop *Rect) ([]byte, error)
	Close() error
}

// Newsletter is the record produced for one processed document.
type Newsletter struct {
	Date        *time.Time `json:"date"`
	Description string     `json:"description"`
	Editorial   string     `json:"editorial"`
	IssueNumber *int       `json:"issueNumber"`
	Path        string     `json:"path"`
	Slug        string     `json:"slug"`

	// Source is the file the record was extracted from.
	Source string `json:"-"`
}

// Processor turns one source file into a Newsletter record, writing
// whatever artifacts its configuration asks for.
type Processor interface {
	Process(ctx context.Context, path string) (*Newsletter, error)
}
